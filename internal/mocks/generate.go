// Package mocks provides gomock implementations of the ports used by the service layer.
//
// To regenerate after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	factory := mocks.NewMockPrivilegedClientFactory(ctrl)
//	factory.EXPECT().NewPrivilegedClient().Return(client, nil)
//
// Hand-written fakes with real behaviour (an in-memory session store, a scripted
// identity provider) live in the auth subpackage.
package mocks

// Data clients: both trust levels and their factories.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=data_clients_mock.go github.com/target/gradebook/internal/ports PrivilegedDataClient,PrivilegedClientFactory,StandardDataClient,StandardClientFactory

// Session persistence, for failure paths the in-memory store cannot reproduce.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/target/gradebook/internal/ports SessionStore
