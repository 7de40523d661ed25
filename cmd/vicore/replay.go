package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

type replayOptions struct {
	keys   string
	text   string
	file   string
	json   bool
	field  string
	write  bool
	strict bool
}

func newReplayCmd(c *cli) *cobra.Command {
	var opts replayOptions

	cmd := &cobra.Command{
		Use:   "replay --keys KEYS [--file FILE | --text TEXT]",
		Short: "Feed keys to a document without a terminal",
		Long: `replay opens a document, feeds it a key sequence in vi notation
(for example "dw" or "ifoo<Esc>") and prints the result.

By default the buffer text is printed. --json prints the full editor state
and --field prints one value from it, such as cursor.offset or
registers.unnamed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runReplay(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.keys, "keys", "k", "", "keys to feed, in vi notation")
	f.StringVarP(&opts.text, "text", "t", "", "initial buffer text")
	f.StringVarP(&opts.file, "file", "f", "", "file to edit")
	f.BoolVar(&opts.json, "json", false, "print the editor state as JSON")
	f.StringVar(&opts.field, "field", "", "print one field of the editor state")
	f.BoolVarP(&opts.write, "write", "w", false, "save the file afterwards")
	f.BoolVar(&opts.strict, "strict", false, "fail when a key cannot be handled")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

func (c *cli) runReplay(cmd *cobra.Command, opts replayOptions) error {
	rt, err := newRuntime(c.cfg, c.cfgPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	ed := rt.editor(nil, nil)
	defer ed.Shutdown()

	doc, err := openDocument(ed, opts.file, opts.text)
	if err != nil {
		return err
	}

	if err := ed.HandleKeys(opts.keys); err != nil {
		if opts.strict {
			return err
		}
		rt.log.Warn("replay", "error", err)
	}

	if opts.write {
		if err := doc.Save(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if !opts.json && opts.field == "" {
		_, err := fmt.Fprint(out, doc.Text())
		return err
	}

	snap, err := ed.Snapshot()
	if err != nil {
		return err
	}
	if opts.field != "" {
		res := gjson.Get(snap, opts.field)
		if !res.Exists() {
			return errors.New("no such field: " + opts.field)
		}
		_, err := fmt.Fprintln(out, res.String())
		return err
	}
	_, err = fmt.Fprint(out, gjson.Get(snap, "@pretty").Raw)
	return err
}
