package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/alecthomas/kong"

	"github.com/marcosfpr/bridge/compress"
	"github.com/marcosfpr/bridge/directory"
	"github.com/marcosfpr/bridge/logx"
	"github.com/marcosfpr/bridge/schema"
	"github.com/marcosfpr/bridge/store"
	"github.com/marcosfpr/bridge/version"
)

type schemaCreateCmd struct {
	Output string `arg:"" help:"schema JSON file to write"`
}

type schemaShowCmd struct {
	Input string `arg:"" help:"schema JSON file to read"`
}

type packCmd struct {
	Schema      string `arg:"" help:"schema JSON file"`
	StoreDir    string `arg:"" help:"directory the store is written into"`
	StoreName   string `arg:"" help:"name of the store file within StoreDir"`
	SourcePath  string `arg:"" help:"directory of source files to ingest"`
	BodyField   string `short:"b" help:"stored text field each file's content is written under" default:"body"`
	Pattern     string `short:"p" help:"source file pattern, all files packaged if empty" default:""`
	WorkerCount int    `short:"w" help:"number of workers, 0 means number of CPUs" default:"0"`
	Compress    string `short:"c" help:"block compression strategy" enum:"identity,lz4" default:"identity"`
}

type getCmd struct {
	Schema    string `arg:"" help:"schema JSON file"`
	StoreDir  string `arg:"" help:"directory the store was written into"`
	StoreName string `arg:"" help:"name of the store file within StoreDir"`
	DocId     uint32 `arg:"" help:"document id to fetch"`
	Compress  string `short:"c" help:"block compression strategy the store was written with" enum:"identity,lz4" default:"identity"`
}

type statCmd struct {
	StoreDir  string `arg:"" help:"directory the store was written into"`
	StoreName string `arg:"" help:"name of the store file within StoreDir"`
	Compress  string `short:"c" help:"block compression strategy the store was written with" enum:"identity,lz4" default:"identity"`
}

type versionCmd struct{}

var cli struct {
	Verbose bool `short:"v" help:"verbose logging" default:"false"`

	SchemaCreate schemaCreateCmd `cmd:"" name:"schema-create" aliases:"sc" help:"write a demo schema as JSON"`
	SchemaShow   schemaShowCmd   `cmd:"" name:"schema-show" aliases:"ss" help:"pretty-print a schema JSON file"`
	Pack         packCmd         `cmd:"" aliases:"p" help:"package a directory of files into a document store"`
	Get          getCmd          `cmd:"" aliases:"g" help:"fetch and print one document by id"`
	Stat         statCmd         `cmd:"" aliases:"st" help:"print the block count and byte size of a store file"`
	Version      versionCmd      `cmd:"" help:"print version"`
}

func demoSchema() *schema.Schema {
	b := schema.NewBuilder()
	b.AddTextField("title", schema.TEXT)
	b.AddTextField("body", schema.STORED)
	b.AddNumericField("count", schema.FAST)
	return b.Build()
}

func main() {
	ctx := kong.Parse(&cli)
	if cli.Verbose {
		logx.SetLevel(logx.Debug)
	}

	var err error
	switch ctx.Command() {
	case "schema-create <output>":
		err = runSchemaCreate(cli.SchemaCreate)
	case "schema-show <input>":
		err = runSchemaShow(cli.SchemaShow)
	case "pack <schema> <store-dir> <store-name> <source-path>":
		err = runPack(cli.Pack)
	case "get <schema> <store-dir> <store-name> <doc-id>":
		err = runGet(cli.Get)
	case "stat <store-dir> <store-name>":
		err = runStat(cli.Stat)
	case "version":
		fmt.Println(version.BuildVersion())
	default:
		fmt.Println(version.BuildVersion())
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "bridge: %v\n", err)
		os.Exit(1)
	}
}

func runSchemaCreate(cmd schemaCreateCmd) error {
	data, err := demoSchema().ToJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(cmd.Output, data, 0o644)
}

func runSchemaShow(cmd schemaShowCmd) error {
	data, err := os.ReadFile(cmd.Input)
	if err != nil {
		return err
	}
	s, err := schema.FromJSON(data)
	if err != nil {
		return err
	}
	pretty, err := s.ToJSON()
	if err != nil {
		return err
	}
	buf, err := prettify(pretty)
	if err != nil {
		return err
	}
	fmt.Println(buf.String())
	return nil
}

func prettify(data []byte) (*bytes.Buffer, error) {
	buf := &bytes.Buffer{}
	if err := json.Indent(buf, data, "", "  "); err != nil {
		return nil, err
	}
	return buf, nil
}

func runPack(cmd packCmd) error {
	s, err := loadSchema(cmd.Schema)
	if err != nil {
		return err
	}
	strategy, err := compress.ByName(cmd.Compress)
	if err != nil {
		return err
	}
	dir, err := directory.NewFileDirectory(cmd.StoreDir)
	if err != nil {
		return err
	}
	w, err := dir.OpenWrite(cmd.StoreName)
	if err != nil {
		return err
	}
	sw := store.NewWriter(w, strategy)

	workerCount := cmd.WorkerCount
	if workerCount <= 0 {
		workerCount = runtime.NumCPU()
	}
	opt := store.PackageOption{
		Path:        cmd.SourcePath,
		Pattern:     cmd.Pattern,
		WorkerCount: workerCount,
		BodyField:   cmd.BodyField,
	}
	if err := store.PackageDir(opt, s, sw); err != nil {
		return err
	}
	return sw.Close()
}

func runGet(cmd getCmd) error {
	s, err := loadSchema(cmd.Schema)
	if err != nil {
		return err
	}
	strategy, err := compress.ByName(cmd.Compress)
	if err != nil {
		return err
	}
	dir, err := directory.NewFileDirectory(cmd.StoreDir)
	if err != nil {
		return err
	}
	src, err := dir.Source(cmd.StoreName)
	if err != nil {
		return err
	}
	r, err := store.NewReader(src, strategy)
	if err != nil {
		return err
	}
	doc, err := r.Get(cmd.DocId)
	if err != nil {
		return err
	}
	data, err := s.DocToJSON(doc)
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func runStat(cmd statCmd) error {
	strategy, err := compress.ByName(cmd.Compress)
	if err != nil {
		return err
	}
	dir, err := directory.NewFileDirectory(cmd.StoreDir)
	if err != nil {
		return err
	}
	src, err := dir.Source(cmd.StoreName)
	if err != nil {
		return err
	}
	r, err := store.NewReader(src, strategy)
	if err != nil {
		return err
	}
	fmt.Printf("blocks: %d\nsize  : %d bytes\n", r.NumBlocks(), src.Size())
	return nil
}

func loadSchema(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return schema.FromJSON(data)
}
