package usecases

import (
	"context"

	"cardly/internal/application/card/dto"
	"cardly/internal/shared/logger"
)

// ViewPublicCardUseCase records a view and renders the visitor-facing card.
type ViewPublicCardUseCase struct {
	recordView *RecordViewUseCase
	renderer   BioRenderer
	logger     logger.Interface
}

func NewViewPublicCardUseCase(recordView *RecordViewUseCase, renderer BioRenderer, logger logger.Interface) *ViewPublicCardUseCase {
	return &ViewPublicCardUseCase{
		recordView: recordView,
		renderer:   renderer,
		logger:     logger,
	}
}

func (uc *ViewPublicCardUseCase) Execute(ctx context.Context, cmd RecordViewCommand) (*dto.PublicCardDTO, error) {
	c, err := uc.recordView.Execute(ctx, cmd)
	if err != nil {
		return nil, err
	}

	var bioHTML string
	if bio := c.Profile().Bio; bio != "" {
		bioHTML, err = uc.renderer.ToHTMLSanitized(bio)
		if err != nil {
			// the view is already counted, so render without the bio
			uc.logger.Warnw("failed to render card bio", "card_id", c.ID(), "error", err)
			bioHTML = ""
		}
	}

	result := dto.ToPublicCardDTO(c, bioHTML)
	return &result, nil
}
