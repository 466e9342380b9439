package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Roles & Enums
// ============================================================

// User roles
const (
	RoleSuperAdmin  = "SUPER_ADMIN"
	RoleAdmin       = "ADMIN"
	RoleClubManager = "CLUB_MANAGER"
	RoleStudent     = "STUDENT"
)

// Club member roles
const (
	MemberRoleCore    = "CORE_MEMBER"
	MemberRoleGeneral = "GENERAL_MEMBER"
)

// Club member request status
const (
	MemberStatusPending  = "PENDING"
	MemberStatusApproved = "APPROVED"
	MemberStatusRejected = "REJECTED"
)

// Access levels for achievements and resources
const (
	AccessPublic   = "PUBLIC"
	AccessMembers  = "MEMBERS_ONLY"
	AccessCoreOnly = "CORE_MEMBERS_ONLY"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents the users table. All principals (super admin, admins,
// club managers, students) live here, distinguished by Role.
// Invariant: ADMIN and CLUB_MANAGER rows always carry DepartmentName.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"size:100;not null" json:"name"`
	Email          string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password       string         `gorm:"size:255;not null" json:"-"`
	Role           string         `gorm:"size:20;not null;default:'STUDENT';index" json:"role"`
	DepartmentName string         `gorm:"size:100;index" json:"department_name,omitempty"`
	ManagedClubID  *uint          `json:"managed_club_id,omitempty"`
	IsActive       bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt    *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// IsAdminRole reports whether the user holds ADMIN or SUPER_ADMIN.
func (u *User) IsAdminRole() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

// UserResponse DTO
type UserResponse struct {
	ID             uint       `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Role           string     `json:"role"`
	DepartmentName string     `json:"department_name,omitempty"`
	ManagedClubID  *uint      `json:"managed_club_id,omitempty"`
	IsActive       bool       `json:"is_active"`
	LastLoginAt    *time.Time `json:"last_login_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		DepartmentName: u.DepartmentName,
		ManagedClubID:  u.ManagedClubID,
		IsActive:       u.IsActive,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Club Tables
// ============================================================

// Club represents clubs table. At most one manager per club; the manager's
// department must equal the club's department.
type Club struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Name           string         `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Type           string         `gorm:"size:50" json:"type"`
	DepartmentName string         `gorm:"size:100;not null;index" json:"department_name"`
	ManagerID      *uint          `json:"manager_id,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Manager *User        `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Members []ClubMember `gorm:"foreignKey:ClubID" json:"members,omitempty"`
}

func (Club) TableName() string {
	return "clubs"
}

// ClubResponse DTO
type ClubResponse struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	Type           string    `json:"type"`
	DepartmentName string    `json:"department_name"`
	ManagerID      *uint     `json:"manager_id,omitempty"`
	ManagerName    string    `json:"manager_name,omitempty"`
	MemberCount    int64     `json:"member_count"`
	CreatedAt      time.Time `json:"created_at"`
}

func (c *Club) ToResponse() *ClubResponse {
	resp := &ClubResponse{
		ID:             c.ID,
		Name:           c.Name,
		Description:    c.Description,
		Type:           c.Type,
		DepartmentName: c.DepartmentName,
		ManagerID:      c.ManagerID,
		CreatedAt:      c.CreatedAt,
	}
	if c.Manager != nil {
		resp.ManagerName = c.Manager.Name
	}
	return resp
}

// ClubMember represents club_members table (join records).
// One record per (club, user) pair, enforced by the unique index.
type ClubMember struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	ClubID     uint       `gorm:"not null;uniqueIndex:idx_club_user" json:"club_id"`
	UserID     uint       `gorm:"not null;index;uniqueIndex:idx_club_user" json:"user_id"`
	Role       string     `gorm:"size:20;not null;default:'GENERAL_MEMBER'" json:"role"`
	Status     string     `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	ApprovedBy *uint      `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Club     *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	User     *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Approver *User `gorm:"foreignKey:ApprovedBy" json:"approver,omitempty"`
}

func (ClubMember) TableName() string {
	return "club_members"
}

func (m *ClubMember) IsPending() bool {
	return m.Status == MemberStatusPending
}

// ClubMemberResponse DTO
type ClubMemberResponse struct {
	ID         uint       `json:"id"`
	ClubID     uint       `json:"club_id"`
	UserID     uint       `json:"user_id"`
	UserName   string     `json:"user_name,omitempty"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	ApprovedBy *uint      `json:"approved_by,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func (m *ClubMember) ToResponse() *ClubMemberResponse {
	resp := &ClubMemberResponse{
		ID:         m.ID,
		ClubID:     m.ClubID,
		UserID:     m.UserID,
		Role:       m.Role,
		Status:     m.Status,
		ApprovedBy: m.ApprovedBy,
		ApprovedAt: m.ApprovedAt,
		CreatedAt:  m.CreatedAt,
	}
	if m.User != nil {
		resp.UserName = m.User.Name
	}
	return resp
}

// ============================================================
// Event Tables
// ============================================================

// Event represents events table.
// RegisteredCount is maintained by an atomic conditional update so it can
// never exceed Capacity, even under concurrent registrations.
type Event struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	Title                string         `gorm:"size:200;not null" json:"title"`
	Description          string         `gorm:"type:text" json:"description"`
	Date                 time.Time      `gorm:"not null;index" json:"date"`
	Venue                string         `gorm:"size:200" json:"venue"`
	Capacity             int            `gorm:"not null" json:"capacity"`
	RegistrationDeadline time.Time      `gorm:"not null" json:"registration_deadline"`
	Category             string         `gorm:"size:50;index" json:"category"`
	ClubID               uint           `gorm:"not null;index" json:"club_id"`
	RegisteredCount      int            `gorm:"not null;default:0" json:"registered_count"`
	WaitlistEnabled      bool           `gorm:"default:false" json:"waitlist_enabled"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Club          *Club               `gorm:"foreignKey:ClubID" json:"club,omitempty"`
	Registrations []EventRegistration `gorm:"foreignKey:EventID" json:"registrations,omitempty"`
}

func (Event) TableName() string {
	return "events"
}

// RegistrationClosed reports whether the deadline has passed at t.
func (e *Event) RegistrationClosed(t time.Time) bool {
	return t.After(e.RegistrationDeadline)
}

// IsFull reports whether the event has no seats left.
func (e *Event) IsFull() bool {
	return e.RegisteredCount >= e.Capacity
}

// EventResponse DTO
type EventResponse struct {
	ID                   uint      `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Date                 time.Time `json:"date"`
	Venue                string    `json:"venue"`
	Capacity             int       `json:"capacity"`
	RegistrationDeadline time.Time `json:"registration_deadline"`
	Category             string    `json:"category"`
	ClubID               uint      `json:"club_id"`
	ClubName             string    `json:"club_name,omitempty"`
	RegisteredCount      int       `json:"registered_count"`
	SeatsLeft            int       `json:"seats_left"`
	CreatedAt            time.Time `json:"created_at"`
}

func (e *Event) ToResponse() *EventResponse {
	resp := &EventResponse{
		ID:                   e.ID,
		Title:                e.Title,
		Description:          e.Description,
		Date:                 e.Date,
		Venue:                e.Venue,
		Capacity:             e.Capacity,
		RegistrationDeadline: e.RegistrationDeadline,
		Category:             e.Category,
		ClubID:               e.ClubID,
		RegisteredCount:      e.RegisteredCount,
		SeatsLeft:            e.Capacity - e.RegisteredCount,
		CreatedAt:            e.CreatedAt,
	}
	if e.Club != nil {
		resp.ClubName = e.Club.Name
	}
	return resp
}

// EventRegistration represents event_registrations table.
// One record per (event, user) pair, enforced by the unique index.
type EventRegistration struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EventID   uint      `gorm:"not null;uniqueIndex:idx_event_user" json:"event_id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_event_user" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (EventRegistration) TableName() string {
	return "event_registrations"
}

// ============================================================
// Club Auxiliary Tables
// ============================================================

// ClubAchievement represents club_achievements table
type ClubAchievement struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ClubID      uint           `gorm:"not null;index" json:"club_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	AwardedAt   *time.Time     `json:"awarded_at,omitempty"`
	AccessLevel string         `gorm:"size:30;not null;default:'PUBLIC'" json:"access_level"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Club *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
}

func (ClubAchievement) TableName() string {
	return "club_achievements"
}

// ClubResource represents club_resources table
type ClubResource struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ClubID      uint           `gorm:"not null;index" json:"club_id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	URL         string         `gorm:"size:500" json:"url"`
	Description string         `gorm:"type:text" json:"description"`
	AccessLevel string         `gorm:"size:30;not null;default:'PUBLIC'" json:"access_level"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Club *Club `gorm:"foreignKey:ClubID" json:"club,omitempty"`
}

func (ClubResource) TableName() string {
	return "club_resources"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		// Clubs
		&Club{},
		&ClubMember{},
		// Events
		&Event{},
		&EventRegistration{},
		// Auxiliary
		&ClubAchievement{},
		&ClubResource{},
	)
}
