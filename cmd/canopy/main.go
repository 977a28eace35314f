// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/poiesic/canopy"
	"github.com/poiesic/canopy/ai"
	"github.com/poiesic/canopy/ingest"
	"github.com/poiesic/canopy/pdf"
	"github.com/poiesic/canopy/retrieve"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "canopy",
		Usage: "Hierarchical document retrieval with page citations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./canopy_db",
			},
			&cli.StringFlag{
				Name:  "ai-host",
				Usage: "OpenAI-compatible service host URL",
				Value: "http://localhost:11434/v1",
			},
			&cli.StringFlag{
				Name:  "embedding-model",
				Usage: "Embedding model name",
			},
			&cli.StringFlag{
				Name:  "generator-model",
				Usage: "Generation model name",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "ingest",
				Usage:     "Ingest PDF files or directories into the library",
				ArgsUsage: "<path> [<path> ...]",
				Action:    ingestCommand,
			},
			{
				Name:      "query",
				Aliases:   []string{"ask"},
				Usage:     "Ask a question against an ingested collection",
				ArgsUsage: "<collection> <question>",
				Action:    queryCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of leaf matches to seed retrieval",
						Value: retrieve.DefaultTopK,
					},
					&cli.Float64Flag{
						Name:  "merge-threshold",
						Usage: "Child coverage fraction that triggers merging",
						Value: retrieve.DefaultMergeThreshold,
					},
				},
			},
			{
				Name:   "collections",
				Usage:  "List ingested collections",
				Action: collectionsCommand,
			},
			{
				Name:      "delete",
				Usage:     "Delete a collection and its nodes",
				ArgsUsage: "<collection>",
				Action:    deleteCommand,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openLibrary(c *cli.Context) (*canopy.Library, error) {
	opts := []ai.ConfigOption{ai.WithHost(c.String("ai-host"))}
	if model := c.String("embedding-model"); model != "" {
		opts = append(opts, ai.WithEmbeddingModel(model))
	}
	if model := c.String("generator-model"); model != "" {
		opts = append(opts, ai.WithGeneratorModel(model))
	}

	cfg := ai.NewConfig(opts...)
	return canopy.NewLibrary(c.String("db"), canopy.WithAIConfig(cfg))
}

func ingestCommand(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("usage: canopy ingest <path> [<path> ...]")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	pipeline, err := lib.NewPipeline()
	if err != nil {
		return err
	}
	defer pipeline.Release()

	extractor := ingest.PageExtractorFunc(pdf.Load)

	failed := 0
	for _, path := range c.Args().Slice() {
		files, err := pdfFiles(path)
		if err != nil {
			return err
		}
		for _, file := range files {
			col, err := pipeline.IngestFile(c.Context, extractor, file)
			if err != nil {
				// One bad PDF should not sink the batch.
				slog.Error("ingestion failed", "file", file, "err", err)
				failed++
				continue
			}
			fmt.Printf("%s -> %s (%d pages, %d nodes, %d leaves",
				file, col.Name, col.PageCount, col.NodeCount, col.LeafCount)
			if len(col.Degraded) > 0 {
				fmt.Printf(", %d degraded", len(col.Degraded))
			}
			fmt.Println(")")
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d file(s) failed to ingest", failed)
	}
	return nil
}

// pdfFiles expands a path into the PDF files it names: the file itself,
// or every .pdf directly inside a directory.
func pdfFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			files = append(files, filepath.Join(path, entry.Name()))
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no PDF files in %s", path)
	}
	return files, nil
}

func queryCommand(c *cli.Context) error {
	if c.NArg() < 2 {
		return fmt.Errorf("usage: canopy query <collection> <question>")
	}
	collection := c.Args().Get(0)
	question := strings.Join(c.Args().Slice()[1:], " ")

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	answer, err := lib.Ask(c.Context, collection, question,
		retrieve.WithTopK(c.Int("top-k")),
		retrieve.WithMergeThreshold(c.Float64("merge-threshold")))
	if err != nil {
		return err
	}

	if answer.Text == "" {
		fmt.Println("No relevant context found.")
		return nil
	}

	fmt.Println(answer.Text)
	fmt.Println()
	fmt.Print(answer.Sources.PlainText())
	return nil
}

func collectionsCommand(c *cli.Context) error {
	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	cols, err := lib.Collections(c.Context)
	if err != nil {
		return err
	}

	if len(cols) == 0 {
		fmt.Println("No collections.")
		return nil
	}

	for _, col := range cols {
		fmt.Printf("%s  %s  pages=%d nodes=%d leaves=%d levels=%d",
			col.Name, col.FileName, col.PageCount, col.NodeCount, col.LeafCount, col.Levels)
		if len(col.Degraded) > 0 {
			fmt.Printf(" degraded=%d", len(col.Degraded))
		}
		fmt.Println()
	}
	return nil
}

func deleteCommand(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("usage: canopy delete <collection>")
	}

	lib, err := openLibrary(c)
	if err != nil {
		return err
	}
	defer lib.Close()

	name := c.Args().Get(0)
	if err := lib.DeleteCollection(c.Context, name); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", name)
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
