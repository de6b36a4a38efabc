// Package bootstrap turns a config.Config into a ready query engine: it
// loads the dataset, builds the graph and the normalizer and creates the
// language model client.
package bootstrap

import (
	"context"

	"github.com/OFFIS-RIT/peoplegraph/internal/config"
	"github.com/OFFIS-RIT/peoplegraph/pkg/ai"
	oai "github.com/OFFIS-RIT/peoplegraph/pkg/ai/ollama"
	gai "github.com/OFFIS-RIT/peoplegraph/pkg/ai/openai"
	"github.com/OFFIS-RIT/peoplegraph/pkg/common"
	"github.com/OFFIS-RIT/peoplegraph/pkg/errors"
	"github.com/OFFIS-RIT/peoplegraph/pkg/loader"
	csvloader "github.com/OFFIS-RIT/peoplegraph/pkg/loader/csv"
	ioloader "github.com/OFFIS-RIT/peoplegraph/pkg/loader/io"
	s3loader "github.com/OFFIS-RIT/peoplegraph/pkg/loader/s3"
	"github.com/OFFIS-RIT/peoplegraph/pkg/logger"
	"github.com/OFFIS-RIT/peoplegraph/pkg/query"
)

// NewAIClient creates the language model client selected by cfg.Adapter.
func NewAIClient(cfg config.AIConfig) (ai.GraphAIClient, error) {
	switch cfg.Adapter {
	case "ollama":
		client, err := oai.NewGraphOllamaClient(oai.NewGraphOllamaClientParams{
			ChatModel: cfg.ChatModel,

			BaseURL: cfg.ChatURL,
			ApiKey:  cfg.ChatKey,

			MaxConcurrentRequests: cfg.MaxConcurrent,
		})
		if err != nil {
			return nil, errors.Wrap(err, "could not create Ollama client")
		}
		return client, nil
	default:
		return gai.NewGraphOpenAIClient(gai.NewGraphOpenAIClientParams{
			ChatModel: cfg.ChatModel,
			ChatURL:   cfg.ChatURL,
			ChatKey:   cfg.ChatKey,
		}), nil
	}
}

// DatasetFile resolves cfg.DataPath to a file on disk or, for s3://bucket/key
// locations, to an object in the configured S3 storage. The returned loader
// parses the file as CSV.
func DatasetFile(ctx context.Context, cfg config.Config) (*csvloader.CSVDatasetLoader, loader.DatasetFile, error) {
	var (
		base loader.DatasetLoader
		path = cfg.DataPath
	)

	if bucket, key, ok := loader.ParseS3URI(cfg.DataPath); ok {
		l, err := s3loader.NewS3DatasetLoader(ctx, s3loader.NewS3DatasetLoaderParams{
			Bucket:    bucket,
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
		if err != nil {
			return nil, loader.DatasetFile{}, errors.WrapData(err, "could not create S3 client")
		}
		base = l
		path = key
	} else {
		base = ioloader.NewIODatasetLoader()
	}

	csvLoader := csvloader.NewCSVDatasetLoader(base)
	file := loader.NewDatasetFile(loader.NewDatasetFileParams{
		ID:       cfg.DataPath,
		FilePath: path,
		Loader:   csvLoader,
	})
	return csvLoader, file, nil
}

// LoadRows reads and parses the dataset. Every failure is an ErrData.
func LoadRows(ctx context.Context, cfg config.Config) ([]common.Row, error) {
	csvLoader, file, err := DatasetFile(ctx, cfg)
	if err != nil {
		return nil, err
	}

	rows, err := csvLoader.GetRows(ctx, file)
	if err != nil {
		return nil, err
	}

	logger.Debug("Dataset loaded", "path", cfg.DataPath, "rows", len(rows))
	return rows, nil
}

// NewEngine loads the dataset and wires the query engine. client may be nil,
// which leaves natural language questions unsupported. A DataError means no
// query can run and is meant to be fatal.
func NewEngine(ctx context.Context, cfg config.Config, client ai.GraphAIClient, tracer query.Tracer) (*query.Engine, error) {
	rows, err := LoadRows(ctx, cfg)
	if err != nil {
		return nil, err
	}

	g, n, err := query.Build(ctx, rows)
	if err != nil {
		return nil, err
	}

	var translator *query.Translator
	if client != nil {
		translator = query.NewTranslator(client, query.NewTranslatorParams{
			Timeout:    cfg.AI.Timeout,
			OutputMode: query.OutputMode(cfg.AI.OutputMode),
		})
	}

	return query.NewEngine(query.NewEngineParams{
		Graph:      g,
		Normalizer: n,
		Translator: translator,
		Tracer:     tracer,
	}), nil
}
