package system

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/storage"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" name:"db-path" help:"Show the storage location."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump a stored collection as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	out, err := json.MarshalIndent(map[string]string{"path": ctx.Store.GetConfigPath()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(out))
	return nil
}

// DebugDumpCmd prints the raw stored value of a key, so corrupt data can be
// inspected before the loaders replace it with an empty collection.
type DebugDumpCmd struct {
	Key string `arg:"" enum:"classes,assignments,settings" help:"Storage key (classes, assignments, settings)."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	raw, err := ctx.Store.Get(cmd.Key)
	if errors.Is(err, storage.ErrNotFound) {
		ctx.Printf("%s: not stored\n", cmd.Key)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.Key, err)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		ctx.Printf("%s is not valid JSON (%v); raw value:\n%s\n", cmd.Key, err, raw)
		return nil
	}
	ctx.Println(buf.String())
	return nil
}
