package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/peterbourgon/ff/ffyaml"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/stemdaw/stemdaw"
	"github.com/stemdaw/stemdaw/pkg/cmd/analyze"
	"github.com/stemdaw/stemdaw/pkg/cmd/export"
	"github.com/stemdaw/stemdaw/pkg/cmd/migrate"
	"github.com/stemdaw/stemdaw/pkg/cmd/play"
	"github.com/stemdaw/stemdaw/pkg/cmd/project"
	"github.com/stemdaw/stemdaw/pkg/cmd/render"
	"github.com/stemdaw/stemdaw/pkg/cmd/stems"
	"github.com/stemdaw/stemdaw/pkg/cmd/web"
)

func New(version, commit, date string) *ffcli.Command {
	fs := flag.NewFlagSet("stemdaw", flag.ExitOnError)

	return &ffcli.Command{
		ShortUsage: "stemdaw [flags] <subcommand>",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newVersionCommand(version, commit, date),
			newMixCommand(),
			newMigrateCommand(),
			newProjectCommand(),
			newStemsCommand(),
			newRenderCommand(),
			newPlayCommand(),
			newExportCommand(),
			newAnalyzeCommand(),
			newWebCommand(),
		},
	}
}

func newVersionCommand(version, commit, date string) *ffcli.Command {
	return &ffcli.Command{
		Name:       "version",
		ShortUsage: "stemdaw version",
		ShortHelp:  "print version",
		Exec: func(ctx context.Context, args []string) error {
			v := version
			if v == "" {
				if buildInfo, ok := debug.ReadBuildInfo(); ok {
					v = buildInfo.Main.Version
				}
			}
			if v == "" {
				v = "dev"
			}
			versionFields := []string{v}
			if commit != "" {
				versionFields = append(versionFields, commit)
			}
			if date != "" {
				versionFields = append(versionFields, date)
			}
			fmt.Println(strings.Join(versionFields, " "))
			return nil
		},
	}
}

func newMixCommand() *ffcli.Command {
	cmd := "mix"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &stemdaw.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.Solo, "solo", "", "solo a stem by name")
	fs.Float64Var(&cfg.Volume, "volume", 1.0, "master volume (0.0 to 1.0)")
	fs.DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "per stem load timeout")

	var output string
	fs.StringVar(&output, "output", "mix.wav", "output wav file")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("stemdaw %s [flags] <stem files...>", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("STEMDAW"),
		},
		ShortHelp: fmt.Sprintf("stemdaw %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return stemdaw.Mix(ctx, cfg, args, output)
		},
	}
}

func newMigrateCommand() *ffcli.Command {
	cmd := "migrate"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &migrate.Config{}

	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("stemdaw %s [flags]", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("STEMDAW"),
		},
		ShortHelp: fmt.Sprintf("stemdaw %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return migrate.Run(ctx, cfg)
		},
	}
}

func newProjectCommand() *ffcli.Command {
	cmd := "project"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("stemdaw %s <subcommand> [flags]", cmd),
		ShortHelp:  "manage projects",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newProjectActionCommand("create", project.Create),
			newProjectActionCommand("list", project.List),
			newProjectActionCommand("show", project.Show),
			newProjectActionCommand("delete", project.Delete),
		},
	}
}

func newProjectActionCommand(action string, run func(context.Context, *project.Config) error) *ffcli.Command {
	fs := flag.NewFlagSet(action, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &project.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	fs.StringVar(&cfg.Name, "name", "", "project name")
	fs.StringVar(&cfg.ID, "id", "", "project id")

	return &ffcli.Command{
		Name:       action,
		ShortUsage: fmt.Sprintf("stemdaw project %s [flags]", action),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("STEMDAW"),
		},
		ShortHelp: fmt.Sprintf("stemdaw project %s action", action),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return run(ctx, cfg)
		},
	}
}

func newStemsCommand() *ffcli.Command {
	cmd := "stems"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("stemdaw %s <subcommand> [flags]", cmd),
		ShortHelp:  "manage stems",
		FlagSet:    fs,
		Exec: func(context.Context, []string) error {
			return flag.ErrHelp
		},
		Subcommands: []*ffcli.Command{
			newStemsActionCommand("import", stems.Import),
			newStemsActionCommand("list", stems.List),
		},
	}
}

func newStemsActionCommand(action string, run func(context.Context, *stems.Config) error) *ffcli.Command {
	fs := flag.NewFlagSet(action, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &stems.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	fs.StringVar(&cfg.TrackID, "track", "", "track id")
	fs.StringVar(&cfg.Input, "input", "", "input csv or json with fields (track_id,stem_type,audio_url,separation_mode)")

	return &ffcli.Command{
		Name:       action,
		ShortUsage: fmt.Sprintf("stemdaw stems %s [flags]", action),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("STEMDAW"),
		},
		ShortHelp: fmt.Sprintf("stemdaw stems %s action", action),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return run(ctx, cfg)
		},
	}
}

func newRenderCommand() *ffcli.Command {
	cmd := "render"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &render.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	fs.StringVar(&cfg.FSType, "fs-type", "", "fs type (local, s3)")
	fs.StringVar(&cfg.FSConn, "fs-conn", "", "path for local, key:secret@bucket.region for s3")
	fs.StringVar(&cfg.TrackID, "track", "", "track id to render")
	fs.StringVar(&cfg.Output, "output", "", "output wav file (optional)")
	fs.DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "per stem load timeout")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("stemdaw %s [flags]", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("STEMDAW"),
		},
		ShortHelp: fmt.Sprintf("stemdaw %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return render.Run(ctx, cfg)
		},
	}
}

func newPlayCommand() *ffcli.Command {
	cmd := "play"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &play.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	fs.StringVar(&cfg.TrackID, "track", "", "track id to play")
	fs.StringVar(&cfg.Solo, "solo", "", "solo a stem type (vocals, drums, bass, other)")
	fs.Float64Var(&cfg.Volume, "volume", 1.0, "master volume (0.0 to 1.0)")
	fs.DurationVar(&cfg.Timeout, "timeout", 30*time.Second, "per stem load timeout")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("stemdaw %s [flags]", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("STEMDAW"),
		},
		ShortHelp: fmt.Sprintf("stemdaw %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return play.Run(ctx, cfg)
		},
	}
}

func newExportCommand() *ffcli.Command {
	cmd := "export"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &export.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	fs.StringVar(&cfg.ID, "id", "", "project id")
	fs.StringVar(&cfg.Output, "output", "", "output file (.yaml or .csv)")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("stemdaw %s [flags]", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("STEMDAW"),
		},
		ShortHelp: fmt.Sprintf("stemdaw %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return export.Run(ctx, cfg)
		},
	}
}

func newAnalyzeCommand() *ffcli.Command {
	cmd := "analyze"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &analyze.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.Input, "input", "", "input stem file or url")
	fs.StringVar(&cfg.Output, "output", ".", "output folder")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("stemdaw %s [flags]", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("STEMDAW"),
		},
		ShortHelp: fmt.Sprintf("stemdaw %s command", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return analyze.Run(ctx, cfg)
		},
	}
}

func newWebCommand() *ffcli.Command {
	cmd := "web"
	fs := flag.NewFlagSet(cmd, flag.ExitOnError)
	_ = fs.String("config", "", "config file (optional)")

	cfg := &web.Config{}

	fs.BoolVar(&cfg.Debug, "debug", false, "debug mode")
	fs.StringVar(&cfg.DBType, "db-type", "", "db type (sqlite, mysql, postgres)")
	fs.StringVar(&cfg.DBConn, "db-conn", "", "path for sqlite, dsn for mysql or postgres")
	fs.StringVar(&cfg.Addr, "addr", ":1337", "address to listen on")
	fsMapVar(fs, &cfg.Credentials, "creds", nil, "credentials to use (semicolon separated) Example: user1:pass1;user2:pass2")

	return &ffcli.Command{
		Name:       cmd,
		ShortUsage: fmt.Sprintf("stemdaw %s [flags]", cmd),
		Options: []ff.Option{
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ffyaml.Parser),
			ff.WithEnvVarPrefix("STEMDAW"),
		},
		ShortHelp: fmt.Sprintf("stemdaw %s action", cmd),
		FlagSet:   fs,
		Exec: func(ctx context.Context, args []string) error {
			return web.Serve(ctx, cfg)
		},
	}
}

type mapValue struct {
	v *map[string]string
}

func (m *mapValue) String() string {
	if m.v == nil {
		return ""
	}
	return fmt.Sprintf("%v", map[string]string(*m.v))
}

func (m *mapValue) Set(value string) error {
	if m.v == nil {
		return errors.New("nil map reference")
	}
	pairs := strings.Split(value, ";")
	for _, pair := range pairs {
		parts := strings.SplitN(pair, ":", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid map entry: %s", pair)
		}
		(*m.v)[parts[0]] = parts[1]
	}
	return nil
}

func fsMapVar(fs *flag.FlagSet, p *map[string]string, name string, value map[string]string, usage string) {
	if value == nil {
		value = make(map[string]string)
	}
	*p = value
	fs.Var(&mapValue{p}, name, usage)
}
