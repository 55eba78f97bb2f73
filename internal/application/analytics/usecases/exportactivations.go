package usecases

import (
	"bytes"
	"context"
	"fmt"

	"cardly/internal/application/analytics/dto"
	"cardly/internal/domain/activationevent"
	"cardly/internal/domain/card"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/services/export"
)

var activationsHeader = []string{"Date", "Time", "IP", "UserAgent", "DeviceType"}

// ExportActivationsUseCase renders a card's event log as a spreadsheet friendly CSV.
type ExportActivationsUseCase struct {
	cards    card.Repository
	events   activationevent.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewExportActivationsUseCase(
	cards card.Repository,
	events activationevent.Repository,
	enforcer permission.PermissionEnforcer,
	logger logger.Interface,
) *ExportActivationsUseCase {
	return &ExportActivationsUseCase{
		cards:    cards,
		events:   events,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *ExportActivationsUseCase) Execute(ctx context.Context, actor authorization.Actor, cardID uint) (*dto.ExportFile, error) {
	c, err := authorizeCard(ctx, uc.enforcer, uc.cards, actor, permvo.ActionExport, cardID)
	if err != nil {
		return nil, err
	}

	events, err := uc.events.ListByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("failed to list card events: %w", err)
	}

	table := export.Table{Header: activationsHeader, Rows: make([][]string, 0, len(events))}
	for _, e := range events {
		table.Rows = append(table.Rows, []string{
			biztime.Format(e.CreatedAt(), biztime.DateLayout),
			biztime.Format(e.CreatedAt(), biztime.TimeLayout),
			e.IP(),
			e.UserAgent(),
			e.DeviceType().Label(),
		})
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table, export.CSVOptions{Comma: ';', BOM: true}); err != nil {
		uc.logger.Errorw("failed to render activations csv", "card_id", cardID, "error", err)
		return nil, err
	}

	uc.logger.Infow("activations exported", "card_id", cardID, "rows", len(events), "actor_id", actor.UserID)
	return &dto.ExportFile{
		Filename:    fmt.Sprintf("activations-%s-%s.csv", c.Slug(), biztime.Format(biztime.NowUTC(), "20060102")),
		ContentType: export.ContentTypeCSV,
		Data:        buf.Bytes(),
	}, nil
}
