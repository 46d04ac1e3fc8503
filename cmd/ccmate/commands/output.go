package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ccmate/ccmate/internal/logging"
)

var (
	titleColor   = color.New(color.Bold)
	activeColor  = color.New(color.FgGreen)
	dimColor     = color.New(color.FgHiBlack)
	successColor = color.New(color.FgGreen)
)

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// maskSettings returns a copy of a settings document with values under
// credential-looking keys replaced by masked placeholders. Used by show
// commands so tokens don't end up in terminal scrollback.
func maskSettings(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		switch tv := v.(type) {
		case map[string]any:
			out[k] = maskSettings(tv)
		case string:
			if logging.ShouldMask(k) || logging.ContainsTokenPrefix(tv) {
				out[k] = logging.MaskValue(tv)
			} else {
				out[k] = tv
			}
		default:
			if logging.ShouldMask(k) {
				out[k] = logging.MaskValue(fmt.Sprint(v))
			} else {
				out[k] = v
			}
		}
	}
	return out
}
