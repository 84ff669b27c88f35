package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lophoc/roster/core"
	"github.com/lophoc/roster/core/roster"
)

type (
	rosterApi struct {
		svc  *roster.Service
		deps ServerDeps
	}

	// ProcessRosterRequest carries raw spreadsheet rows plus the identifiers
	// already taken in the destination system.
	ProcessRosterRequest struct {
		SchoolPrefix         string       `json:"school_prefix" validate:"omitempty,alphanum_ascii"`
		Rows                 []roster.Row `json:"rows"`
		ExistingUsernames    []string     `json:"existing_usernames"`
		ExistingDisplayNames []string     `json:"existing_display_names"`
		DryRun               bool         `json:"dry_run"`
	}
)

func registerRosterAPI(g *echo.Group, deps ServerDeps) {
	api := rosterApi{svc: deps.RosterSvc, deps: deps}

	rg := g.Group("/roster")
	rg.POST("/process", api.rosterProcess)
}

// rosterProcess runs a batch and returns the generated records. With
// dry_run set, nothing is persisted.
func (api *rosterApi) rosterProcess(ctx echo.Context) error {
	data := new(ProcessRosterRequest)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := api.deps.Validate.Struct(data); err != nil {
		return err
	}
	if data.SchoolPrefix == "" && api.deps.Conf.SchoolPrefix == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "school_prefix", Error: "this field is required"})
	}

	reqCtx := ctx.Request().Context()
	var batch roster.Batch
	var err error
	if data.DryRun {
		batch, err = api.svc.Process(reqCtx, data.Rows, data.SchoolPrefix, data.ExistingUsernames, data.ExistingDisplayNames)
	} else {
		batch, err = api.svc.ProcessAndSave(reqCtx, data.Rows, data.SchoolPrefix, data.ExistingUsernames, data.ExistingDisplayNames)
	}
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, batch)
}
