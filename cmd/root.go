package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/TuanLDT/apidoc-postman/internal/logging"
)

const (
	envPrefix  = "APIDOC_POSTMAN"
	configName = ".apidoc-postman"
)

type config struct {
	Input    string `mapstructure:"input"`
	Src      string `mapstructure:"src"`
	Output   string `mapstructure:"output"`
	Format   string `mapstructure:"format"`
	Name     string `mapstructure:"name"`
	Title    string `mapstructure:"title"`
	Version  string `mapstructure:"version"`
	Indent   bool   `mapstructure:"indent"`
	Parse    bool   `mapstructure:"parse"`
	Simulate bool   `mapstructure:"simulate"`
	NoGit    bool   `mapstructure:"no-git"`
	Verbose  bool   `mapstructure:"verbose"`
	Debug    bool   `mapstructure:"debug"`
	Silent   bool   `mapstructure:"silent"`
	Color    bool   `mapstructure:"color"`
	Addr     string `mapstructure:"addr"`
}

type app struct {
	v          *viper.Viper
	configFile string
	cfg        config
	log        *zap.SugaredLogger
}

func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New(), log: zap.NewNop().Sugar()}

	root := &cobra.Command{
		Use:   "apidoc-postman",
		Short: "Convert apidoc output into a Postman collection",
		Long: `Convert the api_data.json written by apidoc into a Postman v2.1 collection,
one folder per API group, each request documented with its parameters,
response fields and first success example.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.wrap(a.convert),
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ~/"+configName+".yaml)")
	flags.StringP("input", "i", "./doc/", "directory holding api_data.json and api_project.json")
	flags.StringP("src", "s", "./", "source directory holding package.json and apidoc.json")
	flags.StringP("name", "n", "", "override the project name")
	flags.StringP("title", "t", "", "override the project title")
	flags.String("version", "", "override the project version")
	flags.Bool("no-git", false, "do not read the git checkout for missing metadata")
	flags.BoolP("verbose", "v", false, "verbose debug output")
	flags.Bool("debug", false, "show debug messages")
	flags.Bool("silent", false, "turn all output off")
	flags.Bool("color", true, "colorize log levels")

	local := root.Flags()
	local.StringP("output", "o", "./doc/", "output directory")
	local.StringP("format", "f", formatPostman, "output format: "+strings.Join(formats, ", "))
	local.Bool("indent", false, "indent written json")
	local.Bool("parse", false, "only parse and print the document, no file creation")
	local.Bool("simulate", false, "execute but do not write any file")

	root.AddCommand(newServeCommand(a))

	return root
}

// setup loads the configuration once flags are parsed: flags win over
// APIDOC_POSTMAN_* variables, which win over the config file.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if len(a.configFile) > 0 {
		path, err := homedir.Expand(a.configFile)
		if err != nil {
			return xerrors.Errorf("expanding config path: %w", err)
		}
		a.v.SetConfigFile(path)
	} else {
		if home, err := homedir.Dir(); err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigName(configName)
		a.v.SetConfigType("yaml")
	}

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if len(a.configFile) > 0 || !errors.As(err, &notFound) {
			return xerrors.Errorf("reading config: %w", err)
		}
	}

	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return xerrors.Errorf("decoding config: %w", err)
	}

	log, err := logging.New(logging.Options{
		Debug:   a.cfg.Debug,
		Verbose: a.cfg.Verbose,
		Silent:  a.cfg.Silent,
		Color:   a.cfg.Color,
	})
	if err != nil {
		return xerrors.Errorf("building logger: %w", err)
	}
	a.log = log

	if len(a.v.ConfigFileUsed()) > 0 {
		a.log.Debugw("read config", "file", a.v.ConfigFileUsed())
	}

	return nil
}

// wrap logs the failure of a command before handing it back to cobra.
func (a *app) wrap(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		defer func() { _ = a.log.Sync() }()

		if err := fn(cmd, args); err != nil {
			a.log.Error(err.Error())
			a.log.Debugf("%+v", err)
			return err
		}
		return nil
	}
}
