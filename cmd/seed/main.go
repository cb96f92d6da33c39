package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"portfolio/internal/config"
	"portfolio/internal/db"
	"portfolio/internal/model"
	"portfolio/internal/repository"
)

// SeedProjectData is one project entry of a seed feed.
type SeedProjectData struct {
	Name       string `json:"project_name"`
	Summary    string `json:"summary"`
	GithubURL  string `json:"github_url"`
	WebsiteURL string `json:"website_url"`
	ImageURL   string `json:"image_url"`
}

var demoProjects = []SeedProjectData{
	{
		Name:      "Tinder Bot",
		Summary:   "<p>Selenium bot that logs in and swipes automatically.</p>",
		GithubURL: "https://github.com/example/tinder-bot",
		ImageURL:  "https://images.example.com/tinder-bot.gif",
	},
	{
		Name:       "Portfolio Site",
		Summary:    "<p>This site: projects, a contact form and a single admin.</p>",
		GithubURL:  "https://github.com/example/portfolio",
		WebsiteURL: "https://portfolio.example.com",
		ImageURL:   "https://images.example.com/portfolio.png",
	},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.Open(cfg.DatabaseURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	projects := demoProjects
	if url := os.Getenv("SEED_URL"); url != "" {
		log.Printf("Fetching projects from: %s", url)
		projects, err = fetchProjects(url)
		if err != nil {
			log.Fatalf("Failed to fetch projects: %v", err)
		}
		log.Printf("Fetched %d projects", len(projects))
	}

	repo := repository.NewProjectRepository(gormDB)
	seeded, updated, err := seedProjects(context.Background(), repo, projects)
	if err != nil {
		log.Fatalf("Failed to seed projects: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New projects created: %d", seeded)
	log.Printf("  - Existing projects updated: %d", updated)
}

// fetchProjects downloads a JSON array of projects.
func fetchProjects(url string) ([]SeedProjectData, error) {
	resp, err := http.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var projects []SeedProjectData
	if err := json.Unmarshal(body, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return projects, nil
}

// seedProjects creates missing projects and overwrites existing ones matched by name.
func seedProjects(ctx context.Context, repo repository.ProjectRepository, projects []SeedProjectData) (seeded int, updated int, err error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("error listing projects: %w", err)
	}
	byName := make(map[string]model.ProjectPost, len(existing))
	for _, p := range existing {
		byName[p.ProjectName] = p
	}

	for _, item := range projects {
		if item.Name == "" {
			log.Println("Skipping project without a name")
			continue
		}

		project := model.ProjectPost{
			ProjectName: item.Name,
			Summary:     item.Summary,
			GithubURL:   item.GithubURL,
			WebsiteURL:  item.WebsiteURL,
			ImageURL:    item.ImageURL,
		}

		if current, ok := byName[item.Name]; ok {
			project.ID = current.ID
			if err := repo.Update(ctx, &project); err != nil {
				return seeded, updated, fmt.Errorf("error updating project %q: %w", item.Name, err)
			}
			updated++
			continue
		}

		if err := repo.Create(ctx, &project); err != nil {
			return seeded, updated, fmt.Errorf("error creating project %q: %w", item.Name, err)
		}
		byName[item.Name] = project
		seeded++
	}

	return seeded, updated, nil
}
