package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/Clark-Hu/movielib/internal/console"
	"github.com/Clark-Hu/movielib/internal/domain"
	"github.com/Clark-Hu/movielib/internal/repository"
	"github.com/Clark-Hu/movielib/internal/validation"
)

const msgNoOccupation = "No Occupation entered, or the Occupation entered isn't available!"

// UserService drives the Users menu, which also manages occupations.
type UserService struct {
	users       repository.Users
	occupations repository.Occupations
	validator   *validation.Validator
	ui          *console.UI
	logger      *zap.Logger
}

func NewUserService(users repository.Users, occupations repository.Occupations, v *validation.Validator, ui *console.UI, logger *zap.Logger) *UserService {
	return &UserService{
		users:       users,
		occupations: occupations,
		validator:   v,
		ui:          ui,
		logger:      nopIfNil(logger),
	}
}

func (s *UserService) Run(ctx context.Context) error {
	return runMenu(ctx, s.ui, "Users", []menuAction{
		{label: "List users", run: s.List},
		{label: "List users with occupation names", run: s.ListWithOccupationName},
		{label: "Add user", run: s.Add},
		{label: "Delete user", run: s.Delete},
		{label: "List occupations", run: s.ListOccupations},
		{label: "Add occupation", run: s.AddOccupation},
		{label: "Delete occupation", run: s.DeleteOccupation},
	}, "Back")
}

func (s *UserService) List(ctx context.Context) error {
	log := startAction(s.logger, "list_users")
	users, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		s.ui.Printer.Info("There are no users in the database")
		return nil
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{formatID(u.ID), strconv.Itoa(u.Age), u.Gender, u.ZipCode, formatID(u.OccupationID)})
	}
	s.ui.Printer.Table([]string{"Id", "Age", "Gender", "Zip Code", "Occupation Id"}, rows)
	log.Info("service: users listed", zap.Int("count", len(users)))
	return nil
}

// ListWithOccupationName looks up the occupation of every user one row at a time.
func (s *UserService) ListWithOccupationName(ctx context.Context) error {
	log := startAction(s.logger, "list_users_with_occupation")
	users, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		s.ui.Printer.Info("There are no users in the database")
		return nil
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		name := "unknown"
		occ, err := s.occupations.GetByID(ctx, u.OccupationID)
		switch {
		case err == nil:
			name = occ.Name
		case !errors.Is(err, repository.ErrNotFound):
			return fmt.Errorf("find occupation %d: %w", u.OccupationID, err)
		}
		rows = append(rows, []string{formatID(u.ID), strconv.Itoa(u.Age), u.Gender, u.ZipCode, name})
	}
	s.ui.Printer.Table([]string{"Id", "Age", "Gender", "Zip Code", "Occupation"}, rows)
	log.Info("service: users listed", zap.Int("count", len(users)))
	return nil
}

func (s *UserService) Add(ctx context.Context) error {
	log := startAction(s.logger, "add_user")
	p := s.ui.Prompter

	answer, err := p.Ask(ctx, "Enter the age of the user", "Age", console.ToneCreate)
	if err != nil {
		return err
	}
	n, err := strconv.ParseInt(answer, 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		s.ui.Printer.Error("Age is too large")
		return nil
	}
	if err != nil {
		s.ui.Printer.Error("Age must be an integer")
		return nil
	}
	age := int(n)
	if !domain.ValidAge(age) {
		s.ui.Printer.Error("Age cannot be negative")
		return nil
	}

	gender, err := p.Ask(ctx, "Enter the gender of the user", "Gender", console.ToneCreate)
	if err != nil {
		return err
	}

	zip, err := p.Ask(ctx, "Enter the zip code of the user", "Zip Code", console.ToneCreate)
	if err != nil {
		return err
	}
	if err := s.validator.Var(zip, "required,zipcode"); err != nil {
		s.ui.Printer.Error("Not a valid Zip Code!")
		return nil
	}

	name, err := p.Ask(ctx, "Enter the occupation of the user", "Occupation", console.ToneCreate)
	if err != nil {
		return err
	}
	if name == "" {
		s.ui.Printer.Error(msgNoOccupation)
		return nil
	}
	occ, err := s.occupations.GetByName(ctx, name)
	if errors.Is(err, repository.ErrNotFound) {
		s.ui.Printer.Error(msgNoOccupation)
		return nil
	}
	if err != nil {
		return fmt.Errorf("find occupation: %w", err)
	}

	params := repository.UserCreateParams{
		Age:          age,
		Gender:       gender,
		ZipCode:      zip,
		OccupationID: occ.ID,
	}
	if err := s.validator.Struct(params); err != nil {
		s.ui.Printer.Error("%s", err)
		return nil
	}

	user, err := s.users.Create(ctx, params)
	if errors.Is(err, repository.ErrReferenced) {
		s.ui.Printer.Error(msgNoOccupation)
		return nil
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	s.ui.Printer.Success("User added: %s", user)
	log.Info("service: user added", zap.Int64("user_id", user.ID))
	return nil
}

func (s *UserService) Delete(ctx context.Context) error {
	log := startAction(s.logger, "delete_user")
	answer, err := s.ui.Prompter.Ask(ctx, "Enter the id of the user to delete", "Id", console.ToneDestroy)
	if err != nil {
		return err
	}
	id, err := parseID(answer)
	if err != nil {
		s.ui.Printer.Error("Id must be an integer")
		return nil
	}

	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.ui.Printer.Error("A user with id %d doesn't exist in the database", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("find user: %w", err)
	}

	s.ui.Printer.Println(user.String())
	if err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.ui.Printer.Success("This User has been deleted")
	log.Info("service: user deleted", zap.Int64("user_id", id))
	return nil
}

func (s *UserService) ListOccupations(ctx context.Context) error {
	log := startAction(s.logger, "list_occupations")
	occupations, err := s.occupations.List(ctx)
	if err != nil {
		return fmt.Errorf("list occupations: %w", err)
	}
	if len(occupations) == 0 {
		s.ui.Printer.Info("There are no occupations in the database")
		return nil
	}
	rows := make([][]string, 0, len(occupations))
	for _, o := range occupations {
		rows = append(rows, []string{formatID(o.ID), o.Name})
	}
	s.ui.Printer.Table([]string{"Id", "Name"}, rows)
	log.Info("service: occupations listed", zap.Int("count", len(occupations)))
	return nil
}

func (s *UserService) AddOccupation(ctx context.Context) error {
	log := startAction(s.logger, "add_occupation")
	name, err := s.ui.Prompter.Ask(ctx, "Enter the name of the occupation to add", "Name", console.ToneCreate)
	if err != nil {
		return err
	}
	if name == "" {
		s.ui.Printer.Error("The occupation name cannot be empty")
		return nil
	}

	_, err = s.occupations.GetByName(ctx, name)
	switch {
	case err == nil:
		s.ui.Printer.Error("An occupation with the name %s already exists in the database", name)
		return nil
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("find occupation: %w", err)
	}

	occ, err := s.occupations.Create(ctx, name)
	if errors.Is(err, repository.ErrConflict) {
		s.ui.Printer.Error("An occupation with the name %s already exists in the database", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("create occupation: %w", err)
	}
	s.ui.Printer.Success("Occupation added: %s", occ)
	log.Info("service: occupation added", zap.Int64("occupation_id", occ.ID))
	return nil
}

// DeleteOccupation refuses to remove an occupation any user still holds.
func (s *UserService) DeleteOccupation(ctx context.Context) error {
	log := startAction(s.logger, "delete_occupation")
	answer, err := s.ui.Prompter.Ask(ctx, "Enter the id of the occupation to remove", "Id", console.ToneRemove)
	if err != nil {
		return err
	}
	id, err := parseID(answer)
	if err != nil {
		s.ui.Printer.Error("Id must be an integer")
		return nil
	}

	occ, err := s.occupations.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		s.ui.Printer.Error("An occupation with id %d doesn't exist in the database", id)
		return nil
	}
	if err != nil {
		return fmt.Errorf("find occupation: %w", err)
	}

	referenced, err := s.users.AnyWithOccupation(ctx, id)
	if err != nil {
		return err
	}
	if referenced {
		s.refuseReferenced(occ)
		return nil
	}

	s.ui.Printer.Println(occ.String())
	err = s.occupations.Delete(ctx, id)
	if errors.Is(err, repository.ErrReferenced) {
		s.refuseReferenced(occ)
		return nil
	}
	if err != nil {
		return fmt.Errorf("delete occupation: %w", err)
	}
	s.ui.Printer.Success("This Occupation has been deleted")
	log.Info("service: occupation deleted", zap.Int64("occupation_id", id))
	return nil
}

func (s *UserService) refuseReferenced(occ domain.Occupation) {
	s.ui.Printer.Error("A user still has the occupation %s", occ.Name)
	s.ui.Printer.Warning("Remove all instances of the occupation within the user database first")
}
