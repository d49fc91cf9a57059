package startupController

import (
	"errors"
	"log"

	"venturescope/analysis"
	"venturescope/config"
	"venturescope/models"
	"venturescope/store"
	"venturescope/utils"

	"github.com/gofiber/fiber/v2"
)

// Controller orchestrates the submission lifecycle:
//
//	[no row] --Create--> pending --Submit(profile)+analyze--> analyzed
//
// A failed analysis moves the row to "failed" instead; the committed profile
// stays in place and the row remains fillable.
type Controller struct {
	store    store.Store
	analyzer analysis.Analyzer
}

func New(s store.Store, a analysis.Analyzer) *Controller {
	return &Controller{store: s, analyzer: a}
}

// Create generates a new submission key. Requires authentication; the key it
// hands out is what grants fill/read access to everyone else.
func (ctl *Controller) Create(c *fiber.Ctx) error {
	key, err := ctl.store.CreateSubmission()
	if err != nil {
		log.Printf("Error creating submission: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	// Optionally mail the link to the founder who will fill the form
	if len(c.Body()) > 0 {
		reqData := new(struct {
			Email string `json:"email"`
		})
		if err := c.BodyParser(reqData); err == nil && reqData.Email != "" {
			link := config.AppConfig.AppBaseURL + "/submit/" + key
			go utils.SendSubmissionLinkEmail(reqData.Email, link)
		}
	}

	return c.JSON(fiber.Map{"key": key})
}

// Get returns one submission by key. No authentication: possession of the
// key is the capability.
func (ctl *Controller) Get(c *fiber.Ctx) error {
	startup, err := ctl.store.GetBySubmissionKey(c.Params("key"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		log.Printf("Error fetching submission: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(startup)
}

// Submit persists a validated profile and runs the evaluation. The two writes
// are deliberately separate: if the evaluation fails after the profile
// committed, the profile stays and the row is marked failed.
func (ctl *Controller) Submit(c *fiber.Ctx) error {
	key := c.Params("key")

	profile, ok := c.Locals("validatedProfile").(*models.StartupProfile)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid request body"})
	}

	if _, err := ctl.store.UpdateProfile(key, profile); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		log.Printf("Error updating submission %s: %v", key, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	result, err := ctl.analyzer.Analyze(c.Context(), profile)
	if err != nil {
		log.Printf("Analysis failed for submission %s: %v", key, err)
		if result.Raw != "" {
			log.Printf("Undecodable analysis payload for %s: %s", key, result.Raw)
		}
		if _, serr := ctl.store.SetAnalysis(key, nil, models.StatusFailed); serr != nil {
			log.Printf("Error marking submission %s failed: %v", key, serr)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	updated, err := ctl.store.SetAnalysis(key, result.Analysis, models.StatusAnalyzed)
	if err != nil {
		log.Printf("Error storing analysis for submission %s: %v", key, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(updated)
}

// List returns every submission. Authenticated callers only, but there is no
// per-owner filter: each logged-in user sees all rows.
func (ctl *Controller) List(c *fiber.Ctx) error {
	startups, err := ctl.store.ListStartups()
	if err != nil {
		log.Printf("Error listing submissions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Internal server error"})
	}

	return c.JSON(startups)
}
