package usecases

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"cardly/internal/application/analytics/dto"
	userdto "cardly/internal/application/user/dto"
	"cardly/internal/domain/permission"
	permvo "cardly/internal/domain/permission/valueobjects"
	"cardly/internal/domain/user"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/biztime"
	"cardly/internal/shared/errors"
	"cardly/internal/shared/logger"
	"cardly/internal/shared/services/export"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

var usersHeader = []string{"Name", "Email", "Role", "Status", "CardsCount", "TotalViews", "CreatedAt"}

// ExportUsersUseCase renders the filtered user listing without pagination.
type ExportUsersUseCase struct {
	users    user.Repository
	enforcer permission.PermissionEnforcer
	logger   logger.Interface
}

func NewExportUsersUseCase(users user.Repository, enforcer permission.PermissionEnforcer, logger logger.Interface) *ExportUsersUseCase {
	return &ExportUsersUseCase{
		users:    users,
		enforcer: enforcer,
		logger:   logger,
	}
}

func (uc *ExportUsersUseCase) Execute(ctx context.Context, actor authorization.Actor, req userdto.ListUsersRequest, format string) (*dto.ExportFile, error) {
	if err := permission.Require(uc.enforcer, actor, permvo.ResourceUser, permvo.ActionExport); err != nil {
		return nil, err
	}
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatXLSX {
		return nil, errors.NewValidationError("unsupported export format", format)
	}

	filter, err := req.ToFilter(false)
	if err != nil {
		return nil, err
	}
	items, _, err := uc.users.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list users for export", "error", err)
		return nil, err
	}

	table := usersTable(items)
	stamp := biztime.Format(biztime.NowUTC(), "20060102")

	var buf bytes.Buffer
	file := &dto.ExportFile{}
	switch format {
	case FormatXLSX:
		err = export.WriteXLSX(&buf, "Users", table)
		file.Filename = fmt.Sprintf("users-%s.xlsx", stamp)
		file.ContentType = export.ContentTypeXLSX
	default:
		err = export.WriteCSV(&buf, table, export.CSVOptions{Comma: ','})
		file.Filename = fmt.Sprintf("users-%s.csv", stamp)
		file.ContentType = export.ContentTypeCSV
	}
	if err != nil {
		uc.logger.Errorw("failed to render users export", "format", format, "error", err)
		return nil, err
	}
	file.Data = buf.Bytes()

	uc.logger.Infow("users exported", "format", format, "rows", len(items), "actor_id", actor.UserID)
	return file, nil
}

func usersTable(items []*user.ListItem) export.Table {
	title := cases.Title(language.English)
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		u := item.User
		status := "Inactive"
		if u.IsActive() {
			status = "Active"
		}
		rows = append(rows, []string{
			u.Name(),
			u.Email(),
			title.String(u.Role().String()),
			status,
			strconv.FormatInt(item.CardsCount, 10),
			strconv.FormatInt(item.TotalViews, 10),
			biztime.Format(u.CreatedAt(), biztime.DateTimeLayout),
		})
	}
	return export.Table{Header: usersHeader, Rows: rows}
}
