package service

import (
	"context"
	"errors"
	"strings"

	"github.com/aussiebroadwan/directory/internal/directory/domain"
	"github.com/aussiebroadwan/directory/internal/directory/store"
	"github.com/aussiebroadwan/directory/pkg/idx"
	"github.com/aussiebroadwan/directory/pkg/slogx"
)

// Audit entity types.
const (
	EntityUser      = "user"
	EntityDomain    = "domain"
	EntityRole      = "role"
	EntityGroup     = "group"
	EntityUserRole  = "user_role"
	EntityUserGroup = "user_group"
)

// AdminService backs the admin console. Every mutation runs in a
// transaction together with its audit row.
type AdminService struct {
	Store store.Store
	Audit *AuditService
}

type UserDetail struct {
	User       domain.User
	Domain     domain.Domain
	Emails     []domain.Email
	Properties []domain.Property
	Roles      []string
	Groups     []string

	// Every role and group, for the assignment forms.
	AllRoles  []domain.RoleSummary
	AllGroups []domain.GroupSummary
}

type RoleDetail struct {
	Role    domain.Role
	Members []domain.Member
	Users   []domain.UserSummary
}

type GroupDetail struct {
	Group   domain.Group
	Domain  domain.Domain
	Members []domain.Member
	Users   []domain.UserSummary
}

// Counts returns the dashboard totals.
func (s *AdminService) Counts(ctx context.Context) (domain.Counts, error) {
	var c domain.Counts
	var err error
	if c.Users, err = s.Store.Users().Count(ctx); err != nil {
		return c, err
	}
	if c.Roles, err = s.Store.Roles().Count(ctx); err != nil {
		return c, err
	}
	if c.Groups, err = s.Store.Groups().Count(ctx); err != nil {
		return c, err
	}
	if c.Domains, err = s.Store.Domains().Count(ctx); err != nil {
		return c, err
	}
	return c, nil
}

func (s *AdminService) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	return s.Store.Users().List(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id string) (UserDetail, error) {
	u, err := s.Store.Users().GetByID(ctx, id)
	if err != nil {
		return UserDetail{}, notFound(err, "user not found")
	}

	d := UserDetail{User: u}
	if d.Domain, err = s.Store.Domains().GetByID(ctx, u.DomainID); err != nil {
		return UserDetail{}, err
	}
	if d.Emails, err = s.Store.Emails().ListByUser(ctx, u.ID); err != nil {
		return UserDetail{}, err
	}
	if d.Properties, err = s.Store.Properties().ListByUser(ctx, u.ID); err != nil {
		return UserDetail{}, err
	}
	if d.Roles, err = s.Store.Roles().NamesForUser(ctx, u.ID); err != nil {
		return UserDetail{}, err
	}
	if d.Groups, err = s.Store.Groups().NamesForUser(ctx, u.ID); err != nil {
		return UserDetail{}, err
	}
	if d.AllRoles, err = s.Store.Roles().List(ctx); err != nil {
		return UserDetail{}, err
	}
	if d.AllGroups, err = s.Store.Groups().List(ctx); err != nil {
		return UserDetail{}, err
	}
	return d, nil
}

func (s *AdminService) ListDomains(ctx context.Context) ([]domain.Domain, error) {
	return s.Store.Domains().List(ctx)
}

func (s *AdminService) ListRoles(ctx context.Context) ([]domain.RoleSummary, error) {
	return s.Store.Roles().List(ctx)
}

func (s *AdminService) GetRole(ctx context.Context, id string) (RoleDetail, error) {
	r, err := s.Store.Roles().GetByID(ctx, id)
	if err != nil {
		return RoleDetail{}, notFound(err, "role not found")
	}
	members, err := s.Store.UserRoles().Members(ctx, id)
	if err != nil {
		return RoleDetail{}, err
	}
	users, err := s.Store.Users().List(ctx)
	if err != nil {
		return RoleDetail{}, err
	}
	return RoleDetail{Role: r, Members: members, Users: users}, nil
}

func (s *AdminService) CreateRole(ctx context.Context, actor Actor, name, description string) (domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Role{}, domain.ErrValidation("role name is required")
	}

	role := domain.Role{
		ID:          idx.New().String(),
		Name:        name,
		Description: strings.TrimSpace(description),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Roles().GetByName(ctx, name); err == nil {
			return domain.ErrConflict("role %q already exists", name)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Roles().Create(ctx, role); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrConflict("role %q already exists", name)
			}
			return err
		}
		return s.Audit.Record(ctx, tx, actor, EntityRole, role.ID, domain.AuditCreate, map[string]any{
			"name":        role.Name,
			"description": role.Description,
		})
	})
	if err != nil {
		return domain.Role{}, err
	}

	slogx.FromContext(ctx).Info("role created", "role_id", role.ID, "name", role.Name, "by", actor.Username)
	return role, nil
}

func (s *AdminService) UpdateRole(ctx context.Context, actor Actor, id, name, description string) (domain.Role, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Role{}, domain.ErrValidation("role name is required")
	}

	var updated domain.Role
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Roles().GetByID(ctx, id)
		if err != nil {
			return notFound(err, "role not found")
		}

		if name != current.Name {
			if other, err := tx.Roles().GetByName(ctx, name); err == nil && other.ID != id {
				return domain.ErrConflict("role %q already exists", name)
			} else if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		updated = current
		updated.Name = name
		updated.Description = strings.TrimSpace(description)
		if err := tx.Roles().Update(ctx, updated); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrConflict("role %q already exists", name)
			}
			return err
		}
		return s.Audit.Record(ctx, tx, actor, EntityRole, id, domain.AuditUpdate, map[string]any{
			"name":        map[string]string{"from": current.Name, "to": updated.Name},
			"description": map[string]string{"from": current.Description, "to": updated.Description},
		})
	})
	if err != nil {
		return domain.Role{}, err
	}
	return updated, nil
}

// DeleteRole removes the role and, through the schema, its assignments.
func (s *AdminService) DeleteRole(ctx context.Context, actor Actor, id string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Roles().GetByID(ctx, id)
		if err != nil {
			return notFound(err, "role not found")
		}
		members, err := tx.UserRoles().CountForRole(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Roles().Delete(ctx, id); err != nil {
			return notFound(err, "role not found")
		}
		return s.Audit.Record(ctx, tx, actor, EntityRole, id, domain.AuditDelete, map[string]any{
			"name":    current.Name,
			"members": members,
		})
	})
}

func (s *AdminService) ListGroups(ctx context.Context) ([]domain.GroupSummary, error) {
	return s.Store.Groups().List(ctx)
}

func (s *AdminService) GetGroup(ctx context.Context, id string) (GroupDetail, error) {
	g, err := s.Store.Groups().GetByID(ctx, id)
	if err != nil {
		return GroupDetail{}, notFound(err, "group not found")
	}
	d, err := s.Store.Domains().GetByID(ctx, g.DomainID)
	if err != nil {
		return GroupDetail{}, err
	}
	members, err := s.Store.UserGroups().Members(ctx, id)
	if err != nil {
		return GroupDetail{}, err
	}
	users, err := s.Store.Users().List(ctx)
	if err != nil {
		return GroupDetail{}, err
	}
	return GroupDetail{Group: g, Domain: d, Members: members, Users: users}, nil
}

func (s *AdminService) CreateGroup(ctx context.Context, actor Actor, name, domainID, description string) (domain.Group, error) {
	name = strings.TrimSpace(name)
	domainID = strings.TrimSpace(domainID)
	if name == "" || domainID == "" {
		return domain.Group{}, domain.ErrValidation("group name and domain are required")
	}

	group := domain.Group{
		ID:          idx.New().String(),
		Name:        name,
		DomainID:    domainID,
		Description: strings.TrimSpace(description),
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireDomain(ctx, tx, domainID); err != nil {
			return err
		}
		if _, err := tx.Groups().GetByName(ctx, name, domainID); err == nil {
			return domain.ErrConflict("group %q already exists in this domain", name)
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		if err := tx.Groups().Create(ctx, group); err != nil {
			return groupWriteError(err, name)
		}
		return s.Audit.Record(ctx, tx, actor, EntityGroup, group.ID, domain.AuditCreate, map[string]any{
			"name":        group.Name,
			"domain_id":   group.DomainID,
			"description": group.Description,
		})
	})
	if err != nil {
		return domain.Group{}, err
	}

	slogx.FromContext(ctx).Info("group created", "group_id", group.ID, "name", group.Name, "by", actor.Username)
	return group, nil
}

func (s *AdminService) UpdateGroup(ctx context.Context, actor Actor, id, name, domainID, description string) (domain.Group, error) {
	name = strings.TrimSpace(name)
	domainID = strings.TrimSpace(domainID)
	if name == "" || domainID == "" {
		return domain.Group{}, domain.ErrValidation("group name and domain are required")
	}

	var updated domain.Group
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Groups().GetByID(ctx, id)
		if err != nil {
			return notFound(err, "group not found")
		}
		if err := requireDomain(ctx, tx, domainID); err != nil {
			return err
		}
		if name != current.Name || domainID != current.DomainID {
			if other, err := tx.Groups().GetByName(ctx, name, domainID); err == nil && other.ID != id {
				return domain.ErrConflict("group %q already exists in this domain", name)
			} else if err != nil && !errors.Is(err, store.ErrNotFound) {
				return err
			}
		}

		updated = current
		updated.Name = name
		updated.DomainID = domainID
		updated.Description = strings.TrimSpace(description)
		if err := tx.Groups().Update(ctx, updated); err != nil {
			return groupWriteError(err, name)
		}
		return s.Audit.Record(ctx, tx, actor, EntityGroup, id, domain.AuditUpdate, map[string]any{
			"name":        map[string]string{"from": current.Name, "to": updated.Name},
			"domain_id":   map[string]string{"from": current.DomainID, "to": updated.DomainID},
			"description": map[string]string{"from": current.Description, "to": updated.Description},
		})
	})
	if err != nil {
		return domain.Group{}, err
	}
	return updated, nil
}

// DeleteGroup removes the group and, through the schema, its memberships.
func (s *AdminService) DeleteGroup(ctx context.Context, actor Actor, id string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Groups().GetByID(ctx, id)
		if err != nil {
			return notFound(err, "group not found")
		}
		members, err := tx.UserGroups().CountForGroup(ctx, id)
		if err != nil {
			return err
		}
		if err := tx.Groups().Delete(ctx, id); err != nil {
			return notFound(err, "group not found")
		}
		return s.Audit.Record(ctx, tx, actor, EntityGroup, id, domain.AuditDelete, map[string]any{
			"name":      current.Name,
			"domain_id": current.DomainID,
			"members":   members,
		})
	})
}

// AssignRole grants a role to a user. An existing assignment is a conflict.
func (s *AdminService) AssignRole(ctx context.Context, actor Actor, userID, roleID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireUserAndRole(ctx, tx, userID, roleID); err != nil {
			return err
		}
		if held, err := tx.UserRoles().Exists(ctx, userID, roleID); err != nil {
			return err
		} else if held {
			return domain.ErrConflict("user already has this role")
		}
		if err := tx.UserRoles().Assign(ctx, userID, roleID); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrConflict("user already has this role")
			}
			return err
		}
		return s.Audit.Record(ctx, tx, actor, EntityUserRole, userID, domain.AuditAssign, map[string]any{
			"user_id": userID,
			"role_id": roleID,
		})
	})
}

// RevokeRole removes a role from a user. Removing an absent assignment
// succeeds without writing anything.
func (s *AdminService) RevokeRole(ctx context.Context, actor Actor, userID, roleID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireUserAndRole(ctx, tx, userID, roleID); err != nil {
			return err
		}
		removed, err := tx.UserRoles().Remove(ctx, userID, roleID)
		if err != nil || !removed {
			return err
		}
		return s.Audit.Record(ctx, tx, actor, EntityUserRole, userID, domain.AuditRevoke, map[string]any{
			"user_id": userID,
			"role_id": roleID,
		})
	})
}

// AssignGroup adds a user to a group. An existing membership is a conflict.
func (s *AdminService) AssignGroup(ctx context.Context, actor Actor, userID, groupID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireUserAndGroup(ctx, tx, userID, groupID); err != nil {
			return err
		}
		if member, err := tx.UserGroups().Exists(ctx, userID, groupID); err != nil {
			return err
		} else if member {
			return domain.ErrConflict("user is already in this group")
		}
		if err := tx.UserGroups().Assign(ctx, userID, groupID); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrConflict("user is already in this group")
			}
			return err
		}
		return s.Audit.Record(ctx, tx, actor, EntityUserGroup, userID, domain.AuditAssign, map[string]any{
			"user_id":  userID,
			"group_id": groupID,
		})
	})
}

// RevokeGroup removes a user from a group. Removing an absent membership
// succeeds without writing anything.
func (s *AdminService) RevokeGroup(ctx context.Context, actor Actor, userID, groupID string) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := requireUserAndGroup(ctx, tx, userID, groupID); err != nil {
			return err
		}
		removed, err := tx.UserGroups().Remove(ctx, userID, groupID)
		if err != nil || !removed {
			return err
		}
		return s.Audit.Record(ctx, tx, actor, EntityUserGroup, userID, domain.AuditRevoke, map[string]any{
			"user_id":  userID,
			"group_id": groupID,
		})
	})
}

func requireUserAndRole(ctx context.Context, st store.Store, userID, roleID string) error {
	if _, err := st.Users().GetByID(ctx, userID); err != nil {
		return notFound(err, "user not found")
	}
	if _, err := st.Roles().GetByID(ctx, roleID); err != nil {
		return notFound(err, "role not found")
	}
	return nil
}

func requireUserAndGroup(ctx context.Context, st store.Store, userID, groupID string) error {
	if _, err := st.Users().GetByID(ctx, userID); err != nil {
		return notFound(err, "user not found")
	}
	if _, err := st.Groups().GetByID(ctx, groupID); err != nil {
		return notFound(err, "group not found")
	}
	return nil
}

func requireDomain(ctx context.Context, st store.Store, domainID string) error {
	if _, err := st.Domains().GetByID(ctx, domainID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ErrIntegrity("domain does not exist")
		}
		return err
	}
	return nil
}

func groupWriteError(err error, name string) error {
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return domain.ErrConflict("group %q already exists in this domain", name)
	case errors.Is(err, store.ErrConstraint):
		return domain.ErrIntegrity("domain does not exist")
	}
	return err
}

// notFound turns store.ErrNotFound into a NotFoundError and passes other
// errors through.
func notFound(err error, msg string) error {
	if errors.Is(err, store.ErrNotFound) {
		return domain.ErrNotFound("%s", msg)
	}
	return err
}
