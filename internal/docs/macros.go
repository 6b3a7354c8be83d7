package docs

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"repoctl/internal/gitinfo"
)

// CodeAnnotationMarker is the HTML snippet docs pages use to show an inline
// code annotation index, exposed as a macro variable so prose can reference
// the marker without hard-coding theme internals.
const CodeAnnotationMarker = `<span class="md-annotation">` +
	`<span class="md-annotation__index" tabindex="-1">` +
	`<span data-md-annotation-id="1"></span>` +
	`</span>` +
	`</span>`

// Variables builds the macro variable map handed to the site generator's
// macro plugin.
func Variables(info gitinfo.Info) map[string]string {
	return map[string]string{
		"git_tag":                info.Tag,
		"git_branch":             info.Branch,
		"git_ref_name":           info.RefName,
		"git_tag_last":           info.LastTag,
		"version_last":           info.LastVersion,
		"version_next":           info.NextVersion,
		"code_annotation_marker": CodeAnnotationMarker,
	}
}

// WriteVariables emits the variables as JSON or as key=value lines.
func WriteVariables(w io.Writer, vars map[string]string, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(vars)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(w, "%s=%s\n", k, vars[k]); err != nil {
			return err
		}
	}
	return nil
}
