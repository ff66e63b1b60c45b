package rpc

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// PeopleServiceName is the fully-qualified name of the PeopleService.
const PeopleServiceName = "splitbill.v1.PeopleService"

const (
	PeopleServiceSavePeopleProcedure   = "/splitbill.v1.PeopleService/SavePeople"
	PeopleServiceListPeopleProcedure   = "/splitbill.v1.PeopleService/ListPeople"
	PeopleServiceFindPeopleProcedure   = "/splitbill.v1.PeopleService/FindPeople"
	PeopleServiceDeletePersonProcedure = "/splitbill.v1.PeopleService/DeletePerson"
)

// PeopleServiceHandler is implemented by the server side of PeopleService.
type PeopleServiceHandler interface {
	SavePeople(context.Context, *connect.Request[SavePeopleRequest]) (*connect.Response[SavePeopleResponse], error)
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	FindPeople(context.Context, *connect.Request[FindPeopleRequest]) (*connect.Response[FindPeopleResponse], error)
	DeletePerson(context.Context, *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error)
}

// NewPeopleServiceHandler builds an HTTP handler for svc.
func NewPeopleServiceHandler(svc PeopleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	mux := http.NewServeMux()
	mux.Handle(PeopleServiceSavePeopleProcedure, connect.NewUnaryHandler(PeopleServiceSavePeopleProcedure, svc.SavePeople, opts...))
	mux.Handle(PeopleServiceListPeopleProcedure, connect.NewUnaryHandler(PeopleServiceListPeopleProcedure, svc.ListPeople, opts...))
	mux.Handle(PeopleServiceFindPeopleProcedure, connect.NewUnaryHandler(PeopleServiceFindPeopleProcedure, svc.FindPeople, opts...))
	mux.Handle(PeopleServiceDeletePersonProcedure, connect.NewUnaryHandler(PeopleServiceDeletePersonProcedure, svc.DeletePerson, opts...))
	return "/" + PeopleServiceName + "/", mux
}

// PeopleServiceClient calls a remote PeopleService.
type PeopleServiceClient struct {
	savePeople   *connect.Client[SavePeopleRequest, SavePeopleResponse]
	listPeople   *connect.Client[ListPeopleRequest, ListPeopleResponse]
	findPeople   *connect.Client[FindPeopleRequest, FindPeopleResponse]
	deletePerson *connect.Client[DeletePersonRequest, DeletePersonResponse]
}

// NewPeopleServiceClient creates a client for the service at baseURL.
func NewPeopleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PeopleServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &PeopleServiceClient{
		savePeople:   connect.NewClient[SavePeopleRequest, SavePeopleResponse](httpClient, baseURL+PeopleServiceSavePeopleProcedure, opts...),
		listPeople:   connect.NewClient[ListPeopleRequest, ListPeopleResponse](httpClient, baseURL+PeopleServiceListPeopleProcedure, opts...),
		findPeople:   connect.NewClient[FindPeopleRequest, FindPeopleResponse](httpClient, baseURL+PeopleServiceFindPeopleProcedure, opts...),
		deletePerson: connect.NewClient[DeletePersonRequest, DeletePersonResponse](httpClient, baseURL+PeopleServiceDeletePersonProcedure, opts...),
	}
}

func (c *PeopleServiceClient) SavePeople(ctx context.Context, req *connect.Request[SavePeopleRequest]) (*connect.Response[SavePeopleResponse], error) {
	return c.savePeople.CallUnary(ctx, req)
}

func (c *PeopleServiceClient) ListPeople(ctx context.Context, req *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *PeopleServiceClient) FindPeople(ctx context.Context, req *connect.Request[FindPeopleRequest]) (*connect.Response[FindPeopleResponse], error) {
	return c.findPeople.CallUnary(ctx, req)
}

func (c *PeopleServiceClient) DeletePerson(ctx context.Context, req *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error) {
	return c.deletePerson.CallUnary(ctx, req)
}
