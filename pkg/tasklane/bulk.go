package tasklane

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"tasklane/pkg/hierarchy"
	"tasklane/pkg/models"
)

// BulkSaveRequest is the payload for POST /api/requirements/bulk-save. It
// carries a requirement tree in one shot: client requirements with nested
// epics and functional requirements, plus optional flat lists of epics and
// functional requirements without an explicit parent. Flat items are spread
// over the available parents round-robin.
type BulkSaveRequest struct {
	ProjectID              models.ProjectID    `json:"project_id"`
	Requirements           []BulkRequirement   `json:"requirements,omitempty"`
	Epics                  []BulkEpic          `json:"epics,omitempty"`
	FunctionalRequirements []BulkFunctionalReq `json:"functional_requirements,omitempty"`
}

type BulkRequirement struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    models.Priority `json:"priority,omitempty"`
	Epics       []BulkEpic      `json:"epics,omitempty"`
}

type BulkEpic struct {
	Title                  string              `json:"title"`
	Description            string              `json:"description,omitempty"`
	Priority               models.Priority     `json:"priority,omitempty"`
	FunctionalRequirements []BulkFunctionalReq `json:"functional_requirements,omitempty"`
}

type BulkFunctionalReq struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Priority    models.Priority `json:"priority,omitempty"`
}

// BulkSaveResult reports what the import did. Items with an empty title are
// skipped; store failures are collected per item so one bad row does not
// abort the rest.
type BulkSaveResult struct {
	Saved   int      `json:"saved"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`

	ClientRequirements     []*models.ClientRequirement     `json:"client_requirements"`
	Epics                  []*models.Epic                  `json:"epics"`
	FunctionalRequirements []*models.FunctionalRequirement `json:"functional_requirements"`
}

type bulkImporter struct {
	app     *App
	gen     *hierarchy.Generator
	project *models.Project
	by      models.UserID
	result  BulkSaveResult
}

func defaultPriority(p models.Priority) models.Priority {
	if p == "" {
		return models.PriorityMedium
	}
	return p
}

func (b *bulkImporter) saveRequirement(ctx context.Context, item BulkRequirement, startSeq int) *models.ClientRequirement {
	if item.Title == "" {
		b.result.Skipped++
		return nil
	}
	hid, err := b.gen.Next(ctx, b.project.Prefix, item.Title, startSeq)
	if err != nil {
		b.result.Errors = append(b.result.Errors, fmt.Sprintf("requirement %q: %v", item.Title, err))
		return nil
	}
	cr := &models.ClientRequirement{
		ID:          models.NewClientRequirementID(),
		ProjectID:   b.project.ID,
		HierarchyID: hid,
		Title:       item.Title,
		Description: item.Description,
		Priority:    defaultPriority(item.Priority),
		CreatedBy:   b.by,
	}
	if err := b.app.store.CreateClientRequirement(ctx, cr); err != nil {
		b.result.Errors = append(b.result.Errors, fmt.Sprintf("requirement %q: %v", item.Title, err))
		return nil
	}
	b.result.Saved++
	b.result.ClientRequirements = append(b.result.ClientRequirements, cr)
	return cr
}

func (b *bulkImporter) saveEpic(ctx context.Context, item BulkEpic, parent *models.ClientRequirement, startSeq int) *models.Epic {
	if item.Title == "" {
		b.result.Skipped++
		return nil
	}
	hid, err := b.gen.Next(ctx, hierarchy.LetterPath(parent.HierarchyID), item.Title, startSeq)
	if err != nil {
		b.result.Errors = append(b.result.Errors, fmt.Sprintf("epic %q: %v", item.Title, err))
		return nil
	}
	epic := &models.Epic{
		ID:                  models.NewEpicID(),
		ProjectID:           b.project.ID,
		ClientRequirementID: parent.ID,
		HierarchyID:         hid,
		Title:               item.Title,
		Description:         item.Description,
		Priority:            defaultPriority(item.Priority),
		CreatedBy:           b.by,
	}
	if err := b.app.store.CreateEpic(ctx, epic); err != nil {
		b.result.Errors = append(b.result.Errors, fmt.Sprintf("epic %q: %v", item.Title, err))
		return nil
	}
	b.result.Saved++
	b.result.Epics = append(b.result.Epics, epic)
	return epic
}

func (b *bulkImporter) saveFunctionalReq(ctx context.Context, item BulkFunctionalReq, parent *models.Epic, startSeq int) *models.FunctionalRequirement {
	if item.Title == "" {
		b.result.Skipped++
		return nil
	}
	hid, err := b.gen.Next(ctx, hierarchy.LetterPath(parent.HierarchyID), item.Title, startSeq)
	if err != nil {
		b.result.Errors = append(b.result.Errors, fmt.Sprintf("functional requirement %q: %v", item.Title, err))
		return nil
	}
	fr := &models.FunctionalRequirement{
		ID:          models.NewFunctionalRequirementID(),
		ProjectID:   b.project.ID,
		EpicID:      parent.ID,
		HierarchyID: hid,
		Title:       item.Title,
		Description: item.Description,
		Priority:    defaultPriority(item.Priority),
		CreatedBy:   b.by,
	}
	if err := b.app.store.CreateFunctionalRequirement(ctx, fr); err != nil {
		b.result.Errors = append(b.result.Errors, fmt.Sprintf("functional requirement %q: %v", item.Title, err))
		return nil
	}
	b.result.Saved++
	b.result.FunctionalRequirements = append(b.result.FunctionalRequirements, fr)
	return fr
}

func (a *App) handleBulkSaveRequirements(w http.ResponseWriter, r *http.Request) {
	var req BulkSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if len(req.Requirements) == 0 && len(req.Epics) == 0 && len(req.FunctionalRequirements) == 0 {
		respondError(w, http.StatusBadRequest, "nothing to import")
		return
	}

	project, err := a.store.GetProject(r.Context(), req.ProjectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if project == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	ctx := r.Context()
	b := &bulkImporter{
		app:     a,
		gen:     a.idGenerator(),
		project: project,
		by:      currentUser(r).ID,
	}

	existingCRs, err := a.store.ListClientRequirements(ctx, project.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	// Nested tree first: each requirement carries its own epics, each epic
	// its own functional requirements.
	for _, item := range req.Requirements {
		cr := b.saveRequirement(ctx, item, len(existingCRs)+len(b.result.ClientRequirements)+1)
		if cr == nil {
			continue
		}
		for _, epicItem := range item.Epics {
			epic := b.saveEpic(ctx, epicItem, cr, 1)
			if epic == nil {
				continue
			}
			for _, frItem := range epicItem.FunctionalRequirements {
				b.saveFunctionalReq(ctx, frItem, epic, 1)
			}
		}
	}

	// Flat epics are spread over the requirements created above, falling back
	// to the project's existing ones when the payload created none.
	if len(req.Epics) > 0 {
		parents := b.result.ClientRequirements
		if len(parents) == 0 {
			parents = existingCRs
		}
		if len(parents) == 0 {
			b.result.Errors = append(b.result.Errors, "flat epics need at least one client requirement in the project")
			b.result.Skipped += len(req.Epics)
		} else {
			for i, idx := range hierarchy.DistributeRoundRobin(len(req.Epics), len(parents)) {
				b.saveEpic(ctx, req.Epics[i], parents[idx], 1)
			}
		}
	}

	// Same for flat functional requirements over epics.
	if len(req.FunctionalRequirements) > 0 {
		parents := b.result.Epics
		if len(parents) == 0 {
			parents, err = a.store.ListEpics(ctx, project.ID)
			if err != nil {
				respondError(w, http.StatusInternalServerError, err.Error())
				return
			}
		}
		if len(parents) == 0 {
			b.result.Errors = append(b.result.Errors, "flat functional requirements need at least one epic in the project")
			b.result.Skipped += len(req.FunctionalRequirements)
		} else {
			for i, idx := range hierarchy.DistributeRoundRobin(len(req.FunctionalRequirements), len(parents)) {
				b.saveFunctionalReq(ctx, req.FunctionalRequirements[i], parents[idx], 1)
			}
		}
	}

	status := http.StatusCreated
	if b.result.Saved == 0 {
		status = http.StatusUnprocessableEntity
	}
	respondJSON(w, status, b.result)
}
