// Package seed loads YAML fixtures into an empty database. Employees and
// articles refer to their company by name; everything is inserted in one
// transaction.
package seed

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"ventas/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"
)

type Fixtures struct {
	Users     []UserFixture     `yaml:"users"`
	Companies []CompanyFixture  `yaml:"companies"`
	Employees []EmployeeFixture `yaml:"employees"`
	Articles  []ArticleFixture  `yaml:"articles"`
}

type UserFixture struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type CompanyFixture struct {
	Name        string  `yaml:"name"`
	Address     *string `yaml:"address"`
	PhoneNumber *string `yaml:"phoneNumber"`
}

type EmployeeFixture struct {
	Name     string  `yaml:"name"`
	Position *string `yaml:"position"`
	Salary   string  `yaml:"salary"`
	Company  string  `yaml:"company"`
}

type ArticleFixture struct {
	Name    string `yaml:"name"`
	Value   string `yaml:"value"`
	Company string `yaml:"company"`
}

// LoadFile reads and parses a fixtures document.
func LoadFile(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixtures file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixtures: %w", err)
	}
	return &f, nil
}

type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
}

type CompanyRepository interface {
	Create(ctx context.Context, company *domain.Company) error
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
}

type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) error
}

type PasswordHasher func(password string) (string, error)

type Result struct {
	Users     int
	Companies int
	Employees int
	Articles  int
}

type Seeder struct {
	txManager TransactionManager
	users     UserRepository
	companies CompanyRepository
	employees EmployeeRepository
	articles  ArticleRepository
	hash      PasswordHasher
	logger    *zap.Logger
}

func NewSeeder(
	txManager TransactionManager,
	users UserRepository,
	companies CompanyRepository,
	employees EmployeeRepository,
	articles ArticleRepository,
	hash PasswordHasher,
	logger *zap.Logger,
) *Seeder {
	return &Seeder{
		txManager: txManager,
		users:     users,
		companies: companies,
		employees: employees,
		articles:  articles,
		hash:      hash,
		logger:    logger,
	}
}

// Apply validates the fixtures and inserts them. Nothing is written when
// validation or any insert fails.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) (*Result, error) {
	plan, err := s.prepare(f)
	if err != nil {
		return nil, err
	}

	err = s.txManager.WithinTx(ctx, func(txCtx context.Context) error {
		for i := range plan.users {
			if err := s.users.Create(txCtx, &plan.users[i]); err != nil {
				return fmt.Errorf("user %q: %w", plan.users[i].Username, err)
			}
		}

		companyIDs := make(map[string]int64, len(plan.companies))
		for i := range plan.companies {
			if err := s.companies.Create(txCtx, &plan.companies[i]); err != nil {
				return fmt.Errorf("company %q: %w", plan.companies[i].Name, err)
			}
			companyIDs[plan.companies[i].Name] = plan.companies[i].ID
		}

		for i := range plan.employees {
			plan.employees[i].CompanyID = companyIDs[f.Employees[i].Company]
			if err := s.employees.Create(txCtx, &plan.employees[i]); err != nil {
				return fmt.Errorf("employee %q: %w", plan.employees[i].Name, err)
			}
		}

		for i := range plan.articles {
			plan.articles[i].CompanyID = companyIDs[f.Articles[i].Company]
			if err := s.articles.Create(txCtx, &plan.articles[i]); err != nil {
				return fmt.Errorf("article %q: %w", plan.articles[i].Name, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seeding database: %w", err)
	}

	result := &Result{
		Users:     len(plan.users),
		Companies: len(plan.companies),
		Employees: len(plan.employees),
		Articles:  len(plan.articles),
	}
	s.logger.Info("fixtures applied",
		zap.Int("users", result.Users),
		zap.Int("companies", result.Companies),
		zap.Int("employees", result.Employees),
		zap.Int("articles", result.Articles),
	)
	return result, nil
}

type plan struct {
	users     []domain.User
	companies []domain.Company
	employees []domain.Employee
	articles  []domain.Article
}

// prepare converts fixtures into entities without touching the database.
// Every problem found is reported at once.
func (s *Seeder) prepare(f *Fixtures) (*plan, error) {
	var errs []error
	p := &plan{}

	known := make(map[string]bool, len(f.Companies))
	for _, c := range f.Companies {
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, errors.New("company without name"))
			continue
		}
		if known[c.Name] {
			errs = append(errs, fmt.Errorf("company %q declared twice", c.Name))
		}
		known[c.Name] = true
		p.companies = append(p.companies, domain.Company{Name: c.Name, Address: c.Address, PhoneNumber: c.PhoneNumber})
	}

	for _, u := range f.Users {
		if u.Username == "" || u.Password == "" {
			errs = append(errs, fmt.Errorf("user %q needs a username and a password", u.Username))
			continue
		}
		h, err := s.hash(u.Password)
		if err != nil {
			errs = append(errs, fmt.Errorf("hashing password of %q: %w", u.Username, err))
			continue
		}
		p.users = append(p.users, domain.User{Username: u.Username, PasswordHash: h})
	}

	for i, e := range f.Employees {
		if strings.TrimSpace(e.Name) == "" {
			errs = append(errs, fmt.Errorf("employee #%d: name is required", i+1))
		}
		salary, err := decimal.NewFromString(e.Salary)
		if err != nil {
			errs = append(errs, fmt.Errorf("employee %q: invalid salary %q", e.Name, e.Salary))
		} else if !salary.IsPositive() {
			errs = append(errs, fmt.Errorf("employee %q: salary must be greater than 0", e.Name))
		}
		if !known[e.Company] {
			errs = append(errs, fmt.Errorf("employee %q: unknown company %q", e.Name, e.Company))
		}
		p.employees = append(p.employees, domain.Employee{Name: e.Name, Position: e.Position, Salary: salary})
	}

	for i, a := range f.Articles {
		if strings.TrimSpace(a.Name) == "" {
			errs = append(errs, fmt.Errorf("article #%d: name is required", i+1))
		}
		value, err := decimal.NewFromString(a.Value)
		if err != nil {
			errs = append(errs, fmt.Errorf("article %q: invalid value %q", a.Name, a.Value))
		} else if value.IsNegative() {
			errs = append(errs, fmt.Errorf("article %q: value must not be negative", a.Name))
		}
		if !known[a.Company] {
			errs = append(errs, fmt.Errorf("article %q: unknown company %q", a.Name, a.Company))
		}
		p.articles = append(p.articles, domain.Article{Name: a.Name, Value: value})
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid fixtures: %w", errors.Join(errs...))
	}
	return p, nil
}
