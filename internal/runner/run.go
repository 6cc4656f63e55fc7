package runner

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/langid"
	"github.com/projectdiscovery/langid/internal/folia"
	"github.com/projectdiscovery/langid/internal/model"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// stdinInput reads plain text from standard input
const stdinInput = "-"

// fatalError aborts the whole run
type fatalError struct {
	err error
}

func (f *fatalError) Error() string { return f.err.Error() }
func (f *fatalError) Unwrap() error { return f.err }

// Runner annotates a batch of inputs
type Runner struct {
	options   *Options
	models    *model.Set
	annotator *langid.Annotator
	output    io.Writer
	closer    io.Closer
	outputMu  sync.Mutex
	redis     *redis.Client
}

// Result of a run
type Result struct {
	Processed int
	Failed    int
}

// New loads the models and prepares the output of a run
func New(opts *Options) (*Runner, error) {
	r := &Runner{options: opts, output: os.Stdout}
	modelOpts := &model.Options{Langs: opts.Langs, DiskTables: opts.DiskTables}
	var err error
	if opts.Redis != "" {
		redisOpts, err := redis.ParseURL(opts.Redis)
		if err != nil {
			return nil, errorutil.NewWithTag("langid", "invalid redis url %v got %v", opts.Redis, err)
		}
		r.redis = redis.NewClient(redisOpts)
		r.models, err = model.LoadRedis(context.Background(), r.redis, modelOpts)
		if err != nil {
			_ = r.redis.Close()
			return nil, err
		}
	} else {
		r.models, err = model.LoadDir(opts.DataDir, modelOpts)
		if err != nil {
			return nil, err
		}
	}
	gologger.Info().Msgf("loaded %v language models: %v", len(r.models.Models), strings.Join(r.models.Languages(), ","))

	r.annotator, err = langid.New(&langid.Options{
		Models:   r.models.Models,
		Policy:   opts.Policy(),
		Subcodes: opts.subcodes,
		Format:   opts.Format,
		Debug:    opts.Debug,
	})
	if err != nil {
		r.Close()
		return nil, err
	}
	if opts.Output != "" {
		f, err := os.OpenFile(opts.Output, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			r.Close()
			return nil, errorutil.NewWithTag("langid", "failed to open output file %v got %v", opts.Output, err)
		}
		r.output, r.closer = f, f
	}
	return r, nil
}

// UploadModels stores the models of the data directory in redis
func UploadModels(ctx context.Context, opts *Options) ([]string, error) {
	redisOpts, err := redis.ParseURL(opts.Redis)
	if err != nil {
		return nil, errorutil.NewWithTag("langid", "invalid redis url %v got %v", opts.Redis, err)
	}
	client := redis.NewClient(redisOpts)
	defer client.Close()
	langs, err := model.UploadDir(ctx, client, opts.DataDir, &model.Options{Langs: opts.Langs})
	if err != nil {
		return langs, err
	}
	if len(langs) == 0 {
		return nil, errorutil.NewWithTag("langid", "no models uploaded from %v", opts.DataDir)
	}
	return langs, nil
}

// Close releases models and output
func (r *Runner) Close() {
	if r.models != nil {
		r.models.Close()
	}
	if r.redis != nil {
		_ = r.redis.Close()
	}
	if r.closer != nil {
		_ = r.closer.Close()
		r.closer = nil
	}
}

// Run processes all inputs. Inputs that cannot be read are skipped and
// counted as failed, the returned error is always a configuration error.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	inputs, err := expandInputs(r.options.Inputs)
	if err != nil {
		return nil, err
	}
	if len(inputs) > 1 {
		gologger.Info().Msgf("start processing of %v files", len(inputs))
	}
	var failed atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.options.Workers)
	for _, input := range inputs {
		input := input
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			err := r.process(input)
			if err == nil {
				return nil
			}
			var fatal *fatalError
			if errors.As(err, &fatal) {
				return fatal.err
			}
			gologger.Error().Msgf("skipping %v: %v", input, err)
			failed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Result{Processed: len(inputs), Failed: int(failed.Load())}, nil
}

func (r *Runner) process(input string) error {
	if strings.HasSuffix(input, ".xml") {
		return r.processFolia(input)
	}
	return r.processText(input)
}

// processFolia annotates a FoLiA document and writes it to its output path
func (r *Runner) processFolia(input string) error {
	gologger.Info().Msgf("process %v", input)
	doc, err := folia.Open(input, &folia.Options{Tags: r.options.Tags, Class: r.options.Class})
	if err != nil {
		return err
	}
	if err := doc.Declare(folia.Processor{Name: ProcessorName, Version: version, Command: r.options.command}); err != nil {
		return err
	}
	outName := folia.OutputPath(r.options.OutDir, input)
	if dir := filepath.Dir(outName); dir != "." && !fileutil.FolderExists(dir) {
		if err := fileutil.CreateFolder(dir); err != nil {
			return &fatalError{errorutil.NewWithTag("langid", "unable to open output file %v, does the output dir exist and is it writable? got %v", outName, err)}
		}
	}
	out, err := os.Create(outName)
	if err != nil {
		return &fatalError{errorutil.NewWithTag("langid", "unable to open output file %v, does the output dir exist and is it writable? got %v", outName, err)}
	}
	defer out.Close()

	summary := r.annotator.AnnotateDocument(doc)
	gologger.Verbose().Msgf("%v: %v units scored, %v annotated", input, summary.Units, summary.Annotated)
	r.write([]byte(summary.Stats.String() + "\n"))
	if _, err := doc.WriteTo(out); err != nil {
		return errorutil.NewWithTag("langid", "failed to write %v got %v", outName, err)
	}
	return nil
}

// processText scores every line of a plain text input
func (r *Runner) processText(input string) error {
	var in io.Reader = os.Stdin
	if input != stdinInput {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	var buf bytes.Buffer
	_, err := r.annotator.AnnotateLines(in, &buf)
	// partial results are still written
	r.write(buf.Bytes())
	return err
}

// write flushes the output of one input at once
func (r *Runner) write(data []byte) {
	r.outputMu.Lock()
	defer r.outputMu.Unlock()
	if _, err := r.output.Write(data); err != nil {
		gologger.Error().Msgf("failed to write output got %v", err)
	}
}

// expandInputs replaces a single directory input with the files it contains
func expandInputs(inputs []string) ([]string, error) {
	var files []string
	for _, input := range inputs {
		if input == stdinInput {
			files = append(files, input)
			continue
		}
		if fileutil.FolderExists(input) {
			entries, err := os.ReadDir(input)
			if err != nil {
				return nil, errorutil.NewWithTag("langid", "no files found: '%v'", input)
			}
			for _, entry := range entries {
				if !entry.IsDir() {
					files = append(files, filepath.Join(input, entry.Name()))
				}
			}
			continue
		}
		if !fileutil.FileExists(input) {
			return nil, errorutil.NewWithTag("langid", "no files found: '%v'", input)
		}
		files = append(files, input)
	}
	if len(files) == 0 {
		return nil, errorutil.NewWithTag("langid", "missing input file(s)")
	}
	return files, nil
}
