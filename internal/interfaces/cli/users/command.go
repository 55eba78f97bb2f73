package users

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"cardly/internal/application/user/dto"
	userUsecases "cardly/internal/application/user/usecases"
	"cardly/internal/infrastructure/auth"
	"cardly/internal/infrastructure/config"
	"cardly/internal/infrastructure/database"
	"cardly/internal/infrastructure/permission"
	"cardly/internal/infrastructure/repository"
	"cardly/internal/interfaces/cli/bootstrap"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/logger"
)

var (
	env        string
	configPath string
	name       string
	email      string
	password   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User account tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	create := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long:  `Create the first administrator, or any later one, without going through the API.`,
		RunE:  runCreateAdmin,
	}
	create.Flags().StringVar(&name, "name", "", "Display name (required)")
	create.Flags().StringVar(&email, "email", "", "Login email (required)")
	create.Flags().StringVar(&password, "password", "", "Password, at least 8 characters (required)")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	cmd.AddCommand(create)
	return cmd
}

func runCreateAdmin(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Init(bootstrap.Options{Env: env, ConfigPath: configPath, WithDatabase: true})
	if err != nil {
		return err
	}
	defer database.Close()

	created, err := CreateAdmin(context.Background(), database.Get(), cfg, log, dto.CreateUserRequest{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Admin %s created with id %d\n", created.Email, created.ID)
	return nil
}

// CreateAdmin creates an admin account as the system actor.
func CreateAdmin(ctx context.Context, gdb *gorm.DB, cfg *config.Config, log logger.Interface, req dto.CreateUserRequest) (*dto.UserDTO, error) {
	enforcer, err := permission.NewEnforcer(gdb, log)
	if err != nil {
		return nil, err
	}
	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	uc := userUsecases.NewCreateUserUseCase(repository.NewUserRepository(gdb, log), hasher, enforcer, log)

	req.Role = string(authorization.RoleAdmin)
	return uc.Execute(ctx, userUsecases.CreateUserCommand{
		Actor:   authorization.SystemActor(),
		Request: req,
	})
}
