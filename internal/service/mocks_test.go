package service

import (
	"bytes"
	"context"
	"io"

	"github.com/khidma-app/khidma-admin/internal/domain"
	"github.com/khidma-app/khidma-admin/internal/identity"
)

// --- Mocks ---

type MockProvider struct {
	SignInWithPasswordFunc func(ctx context.Context, phone, password string) (identity.Session, error)
	UserFromTokenFunc      func(ctx context.Context, accessToken string) (identity.User, error)
	SignOutFunc            func(ctx context.Context, accessToken string) error
	AdminCreateUserFunc    func(ctx context.Context, params identity.CreateUserParams) (identity.User, error)
	AdminGetUserFunc       func(ctx context.Context, id string) (identity.User, error)
	AdminUpdateUserFunc    func(ctx context.Context, id string, params identity.UpdateUserParams) (identity.User, error)
	AdminDeleteUserFunc    func(ctx context.Context, id string) error
}

func (m *MockProvider) SignInWithPassword(ctx context.Context, phone, password string) (identity.Session, error) {
	if m.SignInWithPasswordFunc != nil {
		return m.SignInWithPasswordFunc(ctx, phone, password)
	}
	return identity.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         identity.User{Id: "auth-1", Phone: phone},
	}, nil
}

func (m *MockProvider) UserFromToken(ctx context.Context, accessToken string) (identity.User, error) {
	if m.UserFromTokenFunc != nil {
		return m.UserFromTokenFunc(ctx, accessToken)
	}
	return identity.User{Id: "auth-1"}, nil
}

func (m *MockProvider) SignOut(ctx context.Context, accessToken string) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, accessToken)
	}
	return nil
}

func (m *MockProvider) AdminCreateUser(ctx context.Context, params identity.CreateUserParams) (identity.User, error) {
	if m.AdminCreateUserFunc != nil {
		return m.AdminCreateUserFunc(ctx, params)
	}
	return identity.User{Id: "auth-new", Email: params.Email}, nil
}

func (m *MockProvider) AdminGetUser(ctx context.Context, id string) (identity.User, error) {
	if m.AdminGetUserFunc != nil {
		return m.AdminGetUserFunc(ctx, id)
	}
	return identity.User{Id: id}, nil
}

func (m *MockProvider) AdminUpdateUser(ctx context.Context, id string, params identity.UpdateUserParams) (identity.User, error) {
	if m.AdminUpdateUserFunc != nil {
		return m.AdminUpdateUserFunc(ctx, id, params)
	}
	return identity.User{Id: id}, nil
}

func (m *MockProvider) AdminDeleteUser(ctx context.Context, id string) error {
	if m.AdminDeleteUserFunc != nil {
		return m.AdminDeleteUserFunc(ctx, id)
	}
	return nil
}

type MockRoleStorage struct {
	AccessFlagsFunc func(ctx context.Context, authUserId string) (domain.AccessFlags, error)
}

func (m *MockRoleStorage) AccessFlags(ctx context.Context, authUserId string) (domain.AccessFlags, error) {
	if m.AccessFlagsFunc != nil {
		return m.AccessFlagsFunc(ctx, authUserId)
	}
	return domain.AccessFlags{Admin: true}, nil
}

type MockUserStorage struct {
	UsersFunc                func(ctx context.Context, page, limit int, search, role string) ([]domain.Profile, int, error)
	UsersForSelectFunc       func(ctx context.Context) ([]domain.Profile, error)
	ProfileFunc              func(ctx context.Context, id string) (domain.Profile, error)
	CreateProfileFunc        func(ctx context.Context, p domain.Profile) (string, error)
	UpdateProfileFunc        func(ctx context.Context, id string, p domain.Profile) error
	SetUserRoleFunc          func(ctx context.Context, id string, admin bool) error
	SetUserBanFunc           func(ctx context.Context, id string, banned bool) error
	LinkAuthUserFunc         func(ctx context.Context, id, authUserId string) error
	SoftDeleteUserFunc       func(ctx context.Context, id string) error
	RevertSoftDeleteUserFunc func(ctx context.Context, id string) error
}

func (m *MockUserStorage) Users(ctx context.Context, page, limit int, search, role string) ([]domain.Profile, int, error) {
	if m.UsersFunc != nil {
		return m.UsersFunc(ctx, page, limit, search, role)
	}
	return nil, 0, nil
}

func (m *MockUserStorage) UsersForSelect(ctx context.Context) ([]domain.Profile, error) {
	if m.UsersForSelectFunc != nil {
		return m.UsersForSelectFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserStorage) Profile(ctx context.Context, id string) (domain.Profile, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, id)
	}
	return domain.Profile{Id: id, Email: "user@example.com"}, nil
}

func (m *MockUserStorage) CreateProfile(ctx context.Context, p domain.Profile) (string, error) {
	if m.CreateProfileFunc != nil {
		return m.CreateProfileFunc(ctx, p)
	}
	return "profile-1", nil
}

func (m *MockUserStorage) UpdateProfile(ctx context.Context, id string, p domain.Profile) error {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, id, p)
	}
	return nil
}

func (m *MockUserStorage) SetUserRole(ctx context.Context, id string, admin bool) error {
	if m.SetUserRoleFunc != nil {
		return m.SetUserRoleFunc(ctx, id, admin)
	}
	return nil
}

func (m *MockUserStorage) SetUserBan(ctx context.Context, id string, banned bool) error {
	if m.SetUserBanFunc != nil {
		return m.SetUserBanFunc(ctx, id, banned)
	}
	return nil
}

func (m *MockUserStorage) LinkAuthUser(ctx context.Context, id, authUserId string) error {
	if m.LinkAuthUserFunc != nil {
		return m.LinkAuthUserFunc(ctx, id, authUserId)
	}
	return nil
}

func (m *MockUserStorage) SoftDeleteUser(ctx context.Context, id string) error {
	if m.SoftDeleteUserFunc != nil {
		return m.SoftDeleteUserFunc(ctx, id)
	}
	return nil
}

func (m *MockUserStorage) RevertSoftDeleteUser(ctx context.Context, id string) error {
	if m.RevertSoftDeleteUserFunc != nil {
		return m.RevertSoftDeleteUserFunc(ctx, id)
	}
	return nil
}

type MockMediaStorage struct {
	SaveFunc   func(fileData io.Reader, folder, originalExtension string) (string, error)
	ReadFunc   func(filePath string) (io.ReadCloser, error)
	DeleteFunc func(filePath string) error

	SavedPaths   []string
	DeletedPaths []string
}

func (m *MockMediaStorage) Save(fileData io.Reader, folder, originalExtension string) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(fileData, folder, originalExtension)
	}
	path := folder + "/generated" + originalExtension
	m.SavedPaths = append(m.SavedPaths, path)
	return path, nil
}

func (m *MockMediaStorage) Read(filePath string) (io.ReadCloser, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(filePath)
	}
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (m *MockMediaStorage) Delete(filePath string) error {
	m.DeletedPaths = append(m.DeletedPaths, filePath)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(filePath)
	}
	return nil
}
