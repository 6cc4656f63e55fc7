package runner

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/projectdiscovery/goflags"
	"github.com/projectdiscovery/gologger"
	"github.com/projectdiscovery/gologger/levels"
	"github.com/projectdiscovery/langid"
	"github.com/projectdiscovery/langid/internal/folia"
	errorutil "github.com/projectdiscovery/utils/errors"
	fileutil "github.com/projectdiscovery/utils/file"
	sliceutil "github.com/projectdiscovery/utils/slice"
)

type Options struct {
	Inputs                goflags.StringSlice // FoLiA documents, text files or directories
	Tags                  goflags.StringSlice // elements to examine
	Class                 string              // text class to read
	DataDir               string              // directory with model files
	Langs                 goflags.StringSlice // restrict models to these languages
	Redis                 string              // redis url with shared models
	RedisUpload           bool                // store the data directory models in redis and exit
	DiskTables            bool
	Fallback              string
	Confidence            string
	All                   bool
	CaseSensitive         bool
	Subcodes              string
	SubcodesFile          string
	BasePunct             bool
	VariantOnAlternatives bool
	OutDir                string
	Output                string
	Format                string
	Debug                 bool
	Verbose               bool
	Silent                bool
	Workers               int
	Config                string
	Profile               string
	GenerateProfile       string
	// internal/unexported fields
	threshold float64
	subcodes  langid.SubcodeMap
	command   string
}

func ParseFlags() *Options {
	opts := &Options{}
	flagSet := goflags.NewFlagSet()
	flagSet.SetDescription(`Language identification on FoLiA XML documents or plain text documents, tested against per language frequency models.`)

	flagSet.CreateGroup("input", "Input",
		flagSet.StringSliceVarP(&opts.Inputs, "input", "i", nil, "input files or directory (.xml files are FoLiA, anything else plain text)", goflags.CommaSeparatedStringSliceOptions),
		flagSet.StringSliceVar(&opts.Tags, "tags", nil, "examine text in all <t1>, <t2> ... nodes (default is all structural nodes that have text)", goflags.CommaSeparatedStringSliceOptions),
		flagSet.StringVar(&opts.Class, "class", folia.DefaultClass, "input text class"),
	)

	flagSet.CreateGroup("models", "Models",
		flagSet.StringVar(&opts.DataDir, "data", defaultDataDir(), "data directory containing the language models"),
		flagSet.StringSliceVar(&opts.Langs, "langs", nil, "constrain to these languages only (comma-separated)", goflags.CommaSeparatedStringSliceOptions),
		flagSet.StringVar(&opts.Redis, "redis", "", "redis url to read shared models from instead of the data directory (requires -langs)"),
		flagSet.BoolVar(&opts.RedisUpload, "redis-upload", false, "upload the models of the data directory to -redis and exit"),
		flagSet.BoolVar(&opts.DiskTables, "disk-tables", false, "keep frequency tables in a disk backed store"),
	)

	flagSet.CreateGroup("policy", "Policy",
		flagSet.StringVar(&opts.Fallback, "lang", "", "fallback language, used for unidentified text"),
		flagSet.StringVar(&opts.Confidence, "confidence", "", "confidence threshold (default 0.5), below it the fallback language is used (if set) or no language annotation is made"),
		flagSet.BoolVar(&opts.All, "all", false, "assign all detected languages to the result (default is the most probable)"),
		flagSet.BoolVar(&opts.CaseSensitive, "casesensitive", false, "case sensitive (models must be trained like this too)"),
		flagSet.StringVar(&opts.Subcodes, "subcodes", "", "map language code <code> as a variant of <main>, comma-separated <code>:<main> tuples (ex: dum:nld,nld-vnn:nld)"),
		flagSet.StringVar(&opts.SubcodesFile, "subcodes-file", "", "yaml file with <code>: <main> subcode mappings"),
		flagSet.BoolVar(&opts.BasePunct, "base-punct", false, "do not split tokens on _ ? ! # %"),
		flagSet.BoolVar(&opts.VariantOnAlternatives, "variant-on-alternatives", true, "record the variant feature on alternative languages too"),
	)

	flagSet.CreateGroup("output", "Output",
		flagSet.StringVarP(&opts.OutDir, "outdir", "O", "", "output directory for annotated FoLiA documents"),
		flagSet.StringVarP(&opts.Output, "output", "o", "", "output file for plain text results and statistics"),
		flagSet.StringVar(&opts.Format, "format", langid.DefaultFormat, "plain text result format ({{lang}}, {{logprob}}, {{confidence}}, {{text}})"),
		flagSet.BoolVarP(&opts.Debug, "debug", "d", false, "debug mode, print every model score"),
		flagSet.BoolVarP(&opts.Verbose, "verbose", "v", false, "display verbose output"),
		flagSet.BoolVar(&opts.Silent, "silent", false, "display results only"),
		flagSet.IntVarP(&opts.Workers, "workers", "w", 1, "number of inputs processed in parallel"),
		flagSet.CallbackVarP(printVersion, "version", "V", "display langid version"),
	)

	flagSet.CreateGroup("config", "Config",
		flagSet.StringVar(&opts.Config, "config", "", `langid cli config file (default '$HOME/.config/langid/config.yaml')`),
		flagSet.StringVar(&opts.Profile, "profile", "", "langid profile with languages, subcodes, fallback and confidence"),
		flagSet.StringVar(&opts.GenerateProfile, "generate-profile", "", "write a sample profile to the given path and exit"),
	)

	if err := flagSet.Parse(); err != nil {
		gologger.Fatal().Msgf("Could not read flags: %s\n", err)
	}

	if opts.Config != "" {
		if err := flagSet.MergeConfigFile(opts.Config); err != nil {
			gologger.Error().Msgf("failed to read config file got %v", err)
		}
	}

	if opts.Silent {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelSilent)
	} else if opts.Debug {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelDebug)
	} else if opts.Verbose {
		gologger.DefaultLogger.SetMaxLevel(levels.LevelVerbose)
	}
	showBanner()

	if opts.GenerateProfile != "" {
		if err := generateProfile(opts.GenerateProfile); err != nil {
			gologger.Fatal().Msgf("%v", err)
		}
		gologger.Info().Msgf("sample profile written to %v", opts.GenerateProfile)
		os.Exit(0)
	}

	opts.Inputs = append(opts.Inputs, flagSet.CommandLine.Args()...)
	if len(opts.Inputs) == 0 && fileutil.HasStdin() {
		opts.Inputs = []string{stdinInput}
	}
	opts.command = strings.Join(os.Args, " ")

	if err := opts.Validate(); err != nil {
		gologger.Fatal().Msgf("%v", err)
	}
	return opts
}

// Validate checks options and resolves derived values.
// All returned errors are configuration errors.
func (o *Options) Validate() error {
	if o.RedisUpload {
		if o.Redis == "" {
			return errorutil.NewWithTag("langid", "-redis-upload requires -redis")
		}
	} else if len(o.Inputs) == 0 {
		return errorutil.NewWithTag("langid", "missing input file(s)")
	}
	if o.Profile != "" {
		if err := o.applyProfile(o.Profile); err != nil {
			return err
		}
	}
	o.threshold = langid.DefaultThreshold
	if o.Confidence != "" {
		threshold, err := strconv.ParseFloat(o.Confidence, 64)
		if err != nil {
			return errorutil.NewWithTag("langid", "invalid confidence threshold %v", o.Confidence)
		}
		o.threshold = threshold
	}

	if o.subcodes == nil {
		o.subcodes = langid.SubcodeMap{}
	}
	if o.SubcodesFile != "" {
		fromFile, err := langid.LoadSubcodes(o.SubcodesFile)
		if err != nil {
			return err
		}
		o.subcodes.Merge(fromFile)
	}
	fromFlag, err := langid.ParseSubcodes(o.Subcodes)
	if err != nil {
		return err
	}
	o.subcodes.Merge(fromFlag)

	o.Tags = sliceutil.Dedupe(o.Tags)
	if err := folia.ValidateTags(o.Tags); err != nil {
		return err
	}
	o.Langs = sliceutil.Dedupe(o.Langs)
	if o.Redis != "" && !o.RedisUpload && len(o.Langs) == 0 {
		return errorutil.NewWithTag("langid", "redis models require -langs")
	}
	if err := langid.ValidateFormat(o.Format); err != nil {
		return errorutil.NewWithTag("langid", "invalid format: %v", err)
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.Class == "" {
		o.Class = folia.DefaultClass
	}
	return nil
}

// Policy returns the decision policy configured by the options
func (o *Options) Policy() langid.Policy {
	policy := langid.DefaultPolicy()
	policy.Threshold = o.threshold
	policy.Fallback = o.Fallback
	policy.EmitAll = o.All
	policy.CaseSensitive = o.CaseSensitive
	policy.VariantOnAlternatives = o.VariantOnAlternatives
	if o.BasePunct {
		policy.Punctuation = &langid.BasePunctuation
	}
	return policy
}

func printVersion() {
	gologger.Info().Msgf("Current version: %s", version)
	os.Exit(0)
}

func defaultDataDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "data"
	}
	return filepath.Join(homeDir, fmt.Sprintf(".config/%v/data", ProcessorName))
}
