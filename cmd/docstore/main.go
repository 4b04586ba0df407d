package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/suparena/docstore"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configFlag  = flag.String("config", "", "Path to a YAML config file")
	dbFlag      = flag.String("db", "", "List the containers of this database instead of the account's databases")
	debugFlag   = flag.Bool("debug", false, "Enable per-request debug logging")
)

// config mirrors the environment variables; flags and env win over YAML.
type config struct {
	Endpoint string `yaml:"endpoint"`
	Key      string `yaml:"key"`
}

func loadConfig(path string) (config, error) {
	// .env is optional, a missing file is fine
	_ = godotenv.Load()

	var cfg config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if v := os.Getenv("DOCSTORE_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("DOCSTORE_KEY"); v != "" {
		cfg.Key = v
	}
	return cfg, nil
}

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := docstore.GetVersionInfo()
		fmt.Printf("docstore version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*debugFlag {
		log = log.Level(zerolog.InfoLevel)
	}

	if err := run(log); err != nil {
		log.Error().Err(err).Msg("docstore failed")
		os.Exit(1)
	}
}

func run(log zerolog.Logger) error {
	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}
	if cfg.Endpoint == "" || cfg.Key == "" {
		return fmt.Errorf("endpoint and key are required (flags, DOCSTORE_ENDPOINT/DOCSTORE_KEY, or a config file)")
	}

	cred, err := docstore.NewKeyCredential(cfg.Key)
	if err != nil {
		return err
	}
	client, err := docstore.NewClient(cfg.Endpoint, cred, &docstore.ClientOptions{Logger: &log})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *dbFlag != "" {
		colls, _, err := client.Database(*dbFlag).ListContainers(ctx)
		if err != nil {
			return err
		}
		for _, c := range colls {
			fmt.Printf("%s\t%v\n", c.ID, c.PartitionKey.Paths)
		}
		return nil
	}

	dbs, _, err := client.ListDatabases(ctx)
	if err != nil {
		return err
	}
	for _, db := range dbs {
		fmt.Println(db.ID)
	}
	return nil
}
