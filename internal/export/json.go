package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/credibility-report/internal/types"
)

// JSON pretty-prints the stored representation of the report. Reports built in
// code have no stored bytes and are marshaled instead.
func JSON(r *types.Report) ([]byte, error) {
	raw := r.Raw()
	if len(raw) == 0 {
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report: %w", err)
		}
		return out, nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("failed to indent stored report: %w", err)
	}
	return buf.Bytes(), nil
}
