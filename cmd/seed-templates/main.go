// Command seed-templates loads email template definitions from a YAML
// file and upserts them by name. Existing templates are updated in
// place so the file can be re-applied safely.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/goia/careers-os/internal/config"
	"github.com/goia/careers-os/internal/database"
	"github.com/goia/careers-os/internal/logger"
	"github.com/goia/careers-os/internal/models"
	"github.com/goia/careers-os/internal/repository"
)

type seedFile struct {
	Templates []seedTemplate `yaml:"templates"`
}

type seedTemplate struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Subject     string `yaml:"subject"`
	HTMLContent string `yaml:"html_content"`
	IsDefault   bool   `yaml:"is_default"`
}

func main() {
	path := flag.String("file", "seed/templates.yaml", "path to the template seed file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.LogLevel, ""); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	log := logger.Get()

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("failed to read seed file")
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatal().Err(err).Str("file", *path).Msg("invalid YAML")
	}
	if len(seed.Templates) == 0 {
		log.Warn().Str("file", *path).Msg("no templates in seed file, nothing to do")
		return
	}

	ctx := context.Background()
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	repo := repository.NewTemplatesRepository(db.Pool, log)

	var created, updated int
	for _, st := range seed.Templates {
		outcome := models.OutcomeType(st.Type)
		if !outcome.IsValid() {
			log.Fatal().Str("name", st.Name).Str("type", st.Type).Msg("unknown template type")
		}
		if st.Name == "" || st.Subject == "" || st.HTMLContent == "" {
			log.Fatal().Str("name", st.Name).Msg("name, subject and html_content are required")
		}

		existing, err := repo.GetByName(ctx, st.Name)
		if err != nil {
			log.Fatal().Err(err).Str("name", st.Name).Msg("lookup failed")
		}

		if existing == nil {
			tmpl := &models.EmailTemplate{
				Name:        st.Name,
				Type:        outcome,
				Subject:     st.Subject,
				HTMLContent: st.HTMLContent,
				IsDefault:   st.IsDefault,
			}
			if err := repo.Create(ctx, tmpl); err != nil {
				log.Fatal().Err(err).Str("name", st.Name).Msg("create failed")
			}
			created++
			log.Info().Str("name", st.Name).Str("type", st.Type).Msg("template created")
			continue
		}

		existing.Type = outcome
		existing.Subject = st.Subject
		existing.HTMLContent = st.HTMLContent
		existing.IsDefault = st.IsDefault
		if err := repo.Update(ctx, existing); err != nil {
			log.Fatal().Err(err).Str("name", st.Name).Msg("update failed")
		}
		updated++
		log.Info().Str("name", st.Name).Str("type", st.Type).Msg("template updated")
	}

	log.Info().Int("created", created).Int("updated", updated).Msg("seed complete")
}
