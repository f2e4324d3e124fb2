package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"todoshell/pkg/storage"
)

// HandleFilterShow prints the stored filter as JSON followed by its summary
func HandleFilterShow(ctx context.Context, filters *storage.FilterStorage, out io.Writer) error {
	f, err := filters.LoadFilter(ctx)
	if err != nil {
		return err
	}
	content, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(content))

	if chips := f.Chips(); len(chips) > 0 {
		fmt.Fprintf(out, "active: %s\n", strings.Join(chips, ", "))
	}
	return nil
}

// HandleFilterReset removes the stored filter so the default applies again
func HandleFilterReset(ctx context.Context, filters *storage.FilterStorage, out io.Writer) error {
	if err := filters.ClearFilter(ctx); err != nil {
		return err
	}
	fmt.Fprintln(out, "Filter reset to default")
	return nil
}
