package codes

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	codeUsecases "cardly/internal/application/activationcode/usecases"
	settingUsecases "cardly/internal/application/setting/usecases"
	"cardly/internal/infrastructure/config"
	"cardly/internal/infrastructure/database"
	"cardly/internal/infrastructure/permission"
	"cardly/internal/infrastructure/repository"
	"cardly/internal/interfaces/cli/bootstrap"
	"cardly/internal/shared/authorization"
	"cardly/internal/shared/db"
	"cardly/internal/shared/logger"
)

var (
	env         string
	configPath  string
	count       int
	plan        string
	amountCents int64
	currency    string
	batchFile   string
	printCodes  bool
)

// Batch is one entry of a seed file.
type Batch struct {
	Plan        string `yaml:"plan"`
	Count       int    `yaml:"count"`
	AmountCents *int64 `yaml:"amount_cents"`
	Currency    string `yaml:"currency"`
}

// SeedFile is the document accepted by `codes seed --file`.
type SeedFile struct {
	Batches []Batch `yaml:"batches"`
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "codes",
		Short: "Activation code pool tools",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	cmd.AddCommand(newSeedCommand())
	return cmd
}

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Add available activation codes to the pool",
		Long: `Generate available activation codes, either one batch from flags or
several batches from a YAML file:

  batches:
    - plan: basic
      count: 100
    - plan: premium
      count: 20
      amount_cents: 9990
      currency: BRL`,
		RunE: runSeed,
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "Number of codes to generate")
	cmd.Flags().StringVarP(&plan, "plan", "p", "basic", "Plan granted by the codes (basic, premium, business)")
	cmd.Flags().Int64Var(&amountCents, "amount-cents", -1, "Price in cents (default: codes.default_amount_cents setting)")
	cmd.Flags().StringVar(&currency, "currency", "", "ISO currency code (default BRL)")
	cmd.Flags().StringVarP(&batchFile, "file", "f", "", "YAML file with batches to seed")
	cmd.Flags().BoolVar(&printCodes, "print", false, "Print generated codes")

	return cmd
}

// LoadSeedFile parses and checks a batch file.
func LoadSeedFile(path string) (*SeedFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return ParseSeedFile(raw)
}

func ParseSeedFile(raw []byte) (*SeedFile, error) {
	var f SeedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if len(f.Batches) == 0 {
		return nil, fmt.Errorf("seed file has no batches")
	}
	for i, b := range f.Batches {
		if strings.TrimSpace(b.Plan) == "" {
			return nil, fmt.Errorf("batch %d: plan is required", i+1)
		}
		if b.Count < 1 {
			return nil, fmt.Errorf("batch %d: count must be positive", i+1)
		}
	}
	return &f, nil
}

func batchesFromFlags() ([]Batch, error) {
	if batchFile != "" {
		f, err := LoadSeedFile(batchFile)
		if err != nil {
			return nil, err
		}
		return f.Batches, nil
	}
	if count < 1 {
		return nil, fmt.Errorf("--count or --file is required")
	}
	b := Batch{Plan: plan, Count: count, Currency: currency}
	if amountCents >= 0 {
		amount := amountCents
		b.AmountCents = &amount
	}
	return []Batch{b}, nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	batches, err := batchesFromFlags()
	if err != nil {
		return err
	}

	cfg, log, err := bootstrap.Init(bootstrap.Options{Env: env, ConfigPath: configPath, WithDatabase: true})
	if err != nil {
		return err
	}
	defer database.Close()

	seeder, err := NewSeeder(database.Get(), cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	total := 0
	for _, b := range batches {
		created, err := seeder.Seed(cmd.Context(), b)
		if err != nil {
			return fmt.Errorf("failed to seed %s codes: %w", b.Plan, err)
		}
		total += len(created)
		fmt.Fprintf(out, "%d %s codes created\n", len(created), b.Plan)
		if printCodes {
			for _, code := range created {
				fmt.Fprintln(out, code)
			}
		}
	}
	log.Infow("activation codes seeded", "batches", len(batches), "total", total)
	return nil
}

// Seeder runs the pool seeding use case as the system actor.
type Seeder struct {
	uc *codeUsecases.SeedPoolUseCase
}

func NewSeeder(gdb *gorm.DB, cfg *config.Config, log logger.Interface) (*Seeder, error) {
	enforcer, err := permission.NewEnforcer(gdb, log)
	if err != nil {
		return nil, err
	}
	codeRepo := repository.NewActivationCodeRepository(gdb, log)
	settings := settingUsecases.NewSettingService(repository.NewSystemSettingRepository(gdb, log), log)
	generator := codeUsecases.NewCodeGenerator(codeRepo, cfg.Codes.Length, cfg.Codes.MaxAttempts, log)

	return &Seeder{
		uc: codeUsecases.NewSeedPoolUseCase(codeRepo, generator, db.NewTransactionManager(gdb), settings, enforcer, log),
	}, nil
}

func (s *Seeder) Seed(ctx context.Context, b Batch) ([]string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := s.uc.Execute(ctx, codeUsecases.SeedPoolCommand{
		Actor:       authorization.SystemActor(),
		Count:       b.Count,
		Plan:        b.Plan,
		AmountCents: b.AmountCents,
		Currency:    b.Currency,
	})
	if err != nil {
		return nil, err
	}
	return res.Codes, nil
}
