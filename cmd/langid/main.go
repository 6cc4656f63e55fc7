package main

import (
	"context"
	"strings"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/langid/internal/runner"
)

func main() {

	cliOpts := runner.ParseFlags()

	if cliOpts.RedisUpload {
		langs, err := runner.UploadModels(context.Background(), cliOpts)
		if err != nil {
			gologger.Fatal().Msgf("%v", err)
		}
		gologger.Info().Msgf("uploaded %v language models to redis: %v", len(langs), strings.Join(langs, ","))
		return
	}

	r, err := runner.New(cliOpts)
	if err != nil {
		gologger.Fatal().Msgf("%v", err)
	}

	result, err := r.Run(context.Background())
	// gologger.Fatal exits, release models first
	r.Close()
	if err != nil {
		gologger.Fatal().Msgf("%v", err)
	}

	if result.Failed > 0 {
		gologger.Warning().Msgf("%v of %v inputs could not be processed", result.Failed, result.Processed)
	}
}
