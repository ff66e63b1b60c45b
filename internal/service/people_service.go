package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/splitbill/internal/rpc"
	"github.com/mmynk/splitbill/internal/storage"
)

// PeopleService implements rpc.PeopleServiceHandler.
type PeopleService struct {
	store storage.PeopleRepository
}

var _ rpc.PeopleServiceHandler = (*PeopleService)(nil)

// NewPeopleService creates a PeopleService.
func NewPeopleService(store storage.PeopleRepository) *PeopleService {
	return &PeopleService{store: store}
}

// SavePeople adds or renames people. People without an ID get a new one.
func (s *PeopleService) SavePeople(ctx context.Context, req *connect.Request[rpc.SavePeopleRequest]) (*connect.Response[rpc.SavePeopleResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	people := append(req.Msg.People[:0:0], req.Msg.People...)
	for i := range people {
		if people[i].ID == "" {
			people[i].ID = uuid.New().String()
		}
		if err := people[i].Validate(); err != nil {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("person %d: %w", i, err))
		}
	}

	if err := s.store.SavePeople(ctx, userID, people); err != nil {
		return nil, storageError("save people", err)
	}

	slog.Info("People saved", "user_id", userID, "count", len(people))
	return connect.NewResponse(&rpc.SavePeopleResponse{People: people}), nil
}

// ListPeople lists the caller's people by name.
func (s *PeopleService) ListPeople(ctx context.Context, req *connect.Request[rpc.ListPeopleRequest]) (*connect.Response[rpc.ListPeopleResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	people, err := s.store.ListPeople(ctx, userID)
	if err != nil {
		return nil, storageError("list people", err)
	}
	return connect.NewResponse(&rpc.ListPeopleResponse{People: people}), nil
}

// FindPeople returns people whose name matches, ignoring case.
func (s *PeopleService) FindPeople(ctx context.Context, req *connect.Request[rpc.FindPeopleRequest]) (*connect.Response[rpc.FindPeopleResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	people, err := s.store.FindPeopleByName(ctx, userID, req.Msg.Name)
	if err != nil {
		return nil, storageError("find people", err)
	}
	return connect.NewResponse(&rpc.FindPeopleResponse{People: people}), nil
}

// DeletePerson removes a person, or all of them. Bills keep the names they
// were saved with.
func (s *PeopleService) DeletePerson(ctx context.Context, req *connect.Request[rpc.DeletePersonRequest]) (*connect.Response[rpc.DeletePersonResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}
	if err := validateRequest(req.Msg); err != nil {
		return nil, err
	}

	if req.Msg.All {
		err = s.store.DeleteAllPeople(ctx, userID)
	} else {
		err = s.store.DeletePerson(ctx, userID, req.Msg.PersonID)
	}
	if err != nil {
		return nil, storageError("delete person", err)
	}

	slog.Info("Person deleted", "user_id", userID, "person_id", req.Msg.PersonID, "all", req.Msg.All)
	return connect.NewResponse(&rpc.DeletePersonResponse{}), nil
}
