package services

import (
	"context"
	"time"

	"campushub/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboardData represents admin dashboard data.
// For a department admin every figure is scoped to their department;
// the super admin sees campus-wide numbers.
type AdminDashboardData struct {
	// User Statistics
	TotalUsers    int64 `json:"total_users"`
	TotalStudents int64 `json:"total_students"`
	TotalManagers int64 `json:"total_managers"`

	// Club Statistics
	TotalClubs     int64 `json:"total_clubs"`
	ClubsUnmanaged int64 `json:"clubs_unmanaged"`
	TotalMembers   int64 `json:"total_members"`
	PendingJoins   int64 `json:"pending_joins"`

	// Event Statistics
	TotalEvents        int64 `json:"total_events"`
	UpcomingEvents     int64 `json:"upcoming_events"`
	TotalRegistrations int64 `json:"total_registrations"`
	EventsThisMonth    int64 `json:"events_this_month"`

	// Recent Activity
	RecentEvents []EventSummary `json:"recent_events"`

	// Busiest Clubs
	TopClubs []ClubStats `json:"top_clubs"`
}

// EventSummary represents event summary
type EventSummary struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	ClubName        string    `json:"club_name"`
	Date            time.Time `json:"date"`
	Capacity        int       `json:"capacity"`
	RegisteredCount int       `json:"registered_count"`
}

// ClubStats represents club statistics
type ClubStats struct {
	ClubID      uint   `json:"club_id"`
	Name        string `json:"name"`
	MemberCount int64  `json:"member_count"`
	EventCount  int64  `json:"event_count"`
}

// GetAdminDashboard returns admin dashboard data, scoped to departmentName
// when it is non-empty.
func (s *DashboardService) GetAdminDashboard(ctx context.Context, departmentName string) (*AdminDashboardData, error) {
	data := &AdminDashboardData{}

	users := func() *gorm.DB {
		q := s.db.WithContext(ctx).Table("users").Where("deleted_at IS NULL")
		if departmentName != "" {
			q = q.Where("department_name = ?", departmentName)
		}
		return q
	}
	clubs := func() *gorm.DB {
		q := s.db.WithContext(ctx).Table("clubs").Where("clubs.deleted_at IS NULL")
		if departmentName != "" {
			q = q.Where("clubs.department_name = ?", departmentName)
		}
		return q
	}
	events := func() *gorm.DB {
		q := s.db.WithContext(ctx).Table("events").
			Joins("JOIN clubs ON events.club_id = clubs.id").
			Where("events.deleted_at IS NULL AND clubs.deleted_at IS NULL")
		if departmentName != "" {
			q = q.Where("clubs.department_name = ?", departmentName)
		}
		return q
	}

	// User counts by role
	users().Count(&data.TotalUsers)
	users().Where("role = ?", models.RoleStudent).Count(&data.TotalStudents)
	users().Where("role = ?", models.RoleClubManager).Count(&data.TotalManagers)

	// Club counts
	clubs().Count(&data.TotalClubs)
	clubs().Where("clubs.manager_id IS NULL").Count(&data.ClubsUnmanaged)

	// Membership counts
	s.memberCount(ctx, departmentName, models.MemberStatusApproved, &data.TotalMembers)
	s.memberCount(ctx, departmentName, models.MemberStatusPending, &data.PendingJoins)

	// Event counts
	now := time.Now()
	events().Count(&data.TotalEvents)
	events().Where("events.date > ?", now).Count(&data.UpcomingEvents)

	startOfMonth := now.AddDate(0, 0, -now.Day()+1).Truncate(24 * time.Hour)
	events().Where("events.created_at >= ?", startOfMonth).Count(&data.EventsThisMonth)

	// Registrations across scoped events
	regs := s.db.WithContext(ctx).Table("event_registrations").
		Joins("JOIN events ON event_registrations.event_id = events.id").
		Joins("JOIN clubs ON events.club_id = clubs.id").
		Where("events.deleted_at IS NULL AND clubs.deleted_at IS NULL")
	if departmentName != "" {
		regs = regs.Where("clubs.department_name = ?", departmentName)
	}
	regs.Count(&data.TotalRegistrations)

	// Recent events
	var recent []struct {
		ID              uint
		Title           string
		ClubName        string
		Date            time.Time
		Capacity        int
		RegisteredCount int
	}
	events().
		Select("events.id, events.title, clubs.name as club_name, events.date, events.capacity, events.registered_count").
		Order("events.created_at DESC").
		Limit(10).
		Scan(&recent)

	data.RecentEvents = make([]EventSummary, len(recent))
	for i, e := range recent {
		data.RecentEvents[i] = EventSummary{
			ID:              e.ID,
			Title:           e.Title,
			ClubName:        e.ClubName,
			Date:            e.Date,
			Capacity:        e.Capacity,
			RegisteredCount: e.RegisteredCount,
		}
	}

	// Busiest clubs by approved members
	var top []struct {
		ClubID      uint
		Name        string
		MemberCount int64
		EventCount  int64
	}
	topQuery := s.db.WithContext(ctx).Table("clubs").
		Select(`
			clubs.id as club_id,
			clubs.name,
			(SELECT COUNT(*) FROM club_members WHERE club_members.club_id = clubs.id AND club_members.status = 'APPROVED') as member_count,
			(SELECT COUNT(*) FROM events WHERE events.club_id = clubs.id AND events.deleted_at IS NULL) as event_count
		`).
		Where("clubs.deleted_at IS NULL")
	if departmentName != "" {
		topQuery = topQuery.Where("clubs.department_name = ?", departmentName)
	}
	topQuery.Order("member_count DESC").Limit(5).Scan(&top)

	data.TopClubs = make([]ClubStats, len(top))
	for i, c := range top {
		data.TopClubs[i] = ClubStats{
			ClubID:      c.ClubID,
			Name:        c.Name,
			MemberCount: c.MemberCount,
			EventCount:  c.EventCount,
		}
	}

	return data, nil
}

func (s *DashboardService) memberCount(ctx context.Context, departmentName, status string, out *int64) {
	q := s.db.WithContext(ctx).Table("club_members").
		Joins("JOIN clubs ON club_members.club_id = clubs.id").
		Where("club_members.status = ? AND clubs.deleted_at IS NULL", status)
	if departmentName != "" {
		q = q.Where("clubs.department_name = ?", departmentName)
	}
	q.Count(out)
}

// ============================================================
// Manager Dashboard
// ============================================================

// ManagerDashboardData represents club manager dashboard data
type ManagerDashboardData struct {
	// My Club
	ClubID       uint   `json:"club_id"`
	ClubName     string `json:"club_name"`
	MemberCount  int64  `json:"member_count"`
	CoreMembers  int64  `json:"core_members"`
	PendingJoins int64  `json:"pending_joins"`

	// My Events
	TotalEvents    int64 `json:"total_events"`
	UpcomingEvents int64 `json:"upcoming_events"`
	TotalSeats     int64 `json:"total_seats"`
	SeatsTaken     int64 `json:"seats_taken"`

	// Upcoming
	NextEvents []EventSummary `json:"next_events"`
}

// GetManagerDashboard returns dashboard data for the manager's club
func (s *DashboardService) GetManagerDashboard(ctx context.Context, clubID uint) (*ManagerDashboardData, error) {
	data := &ManagerDashboardData{ClubID: clubID}

	s.db.WithContext(ctx).Table("clubs").
		Where("id = ? AND deleted_at IS NULL", clubID).
		Select("name").
		Scan(&data.ClubName)

	members := func() *gorm.DB {
		return s.db.WithContext(ctx).Table("club_members").Where("club_id = ?", clubID)
	}
	members().Where("status = ?", models.MemberStatusApproved).Count(&data.MemberCount)
	members().Where("status = ? AND role = ?", models.MemberStatusApproved, models.MemberRoleCore).Count(&data.CoreMembers)
	members().Where("status = ?", models.MemberStatusPending).Count(&data.PendingJoins)

	events := func() *gorm.DB {
		return s.db.WithContext(ctx).Table("events").
			Where("club_id = ? AND deleted_at IS NULL", clubID)
	}
	events().Count(&data.TotalEvents)
	events().Where("date > ?", time.Now()).Count(&data.UpcomingEvents)
	events().Select("COALESCE(SUM(capacity), 0)").Scan(&data.TotalSeats)
	events().Select("COALESCE(SUM(registered_count), 0)").Scan(&data.SeatsTaken)

	var next []struct {
		ID              uint
		Title           string
		ClubName        string
		Date            time.Time
		Capacity        int
		RegisteredCount int
	}
	s.db.WithContext(ctx).Table("events").
		Select("events.id, events.title, clubs.name as club_name, events.date, events.capacity, events.registered_count").
		Joins("JOIN clubs ON events.club_id = clubs.id").
		Where("events.club_id = ? AND events.date > ? AND events.deleted_at IS NULL", clubID, time.Now()).
		Order("events.date ASC").
		Limit(5).
		Scan(&next)

	data.NextEvents = make([]EventSummary, len(next))
	for i, e := range next {
		data.NextEvents[i] = EventSummary{
			ID:              e.ID,
			Title:           e.Title,
			ClubName:        e.ClubName,
			Date:            e.Date,
			Capacity:        e.Capacity,
			RegisteredCount: e.RegisteredCount,
		}
	}

	return data, nil
}

// ============================================================
// Student Dashboard
// ============================================================

// StudentDashboardData represents student dashboard data
type StudentDashboardData struct {
	// My Memberships
	TotalMemberships int64 `json:"total_memberships"`
	PendingRequests  int64 `json:"pending_requests"`

	// My Events
	RegisteredEvents int64 `json:"registered_events"`
	UpcomingEvents   int64 `json:"upcoming_events"`

	// Upcoming
	NextEvents []EventSummary `json:"next_events"`
}

// GetStudentDashboard returns dashboard data for a student
func (s *DashboardService) GetStudentDashboard(ctx context.Context, userID uint) (*StudentDashboardData, error) {
	data := &StudentDashboardData{}

	members := func() *gorm.DB {
		return s.db.WithContext(ctx).Table("club_members").Where("user_id = ?", userID)
	}
	members().Where("status = ?", models.MemberStatusApproved).Count(&data.TotalMemberships)
	members().Where("status = ?", models.MemberStatusPending).Count(&data.PendingRequests)

	regs := func() *gorm.DB {
		return s.db.WithContext(ctx).Table("event_registrations").
			Joins("JOIN events ON event_registrations.event_id = events.id").
			Where("event_registrations.user_id = ? AND events.deleted_at IS NULL", userID)
	}
	regs().Count(&data.RegisteredEvents)
	regs().Where("events.date > ?", time.Now()).Count(&data.UpcomingEvents)

	var next []struct {
		ID              uint
		Title           string
		ClubName        string
		Date            time.Time
		Capacity        int
		RegisteredCount int
	}
	s.db.WithContext(ctx).Table("event_registrations").
		Select("events.id, events.title, clubs.name as club_name, events.date, events.capacity, events.registered_count").
		Joins("JOIN events ON event_registrations.event_id = events.id").
		Joins("JOIN clubs ON events.club_id = clubs.id").
		Where("event_registrations.user_id = ? AND events.date > ? AND events.deleted_at IS NULL", userID, time.Now()).
		Order("events.date ASC").
		Limit(5).
		Scan(&next)

	data.NextEvents = make([]EventSummary, len(next))
	for i, e := range next {
		data.NextEvents[i] = EventSummary{
			ID:              e.ID,
			Title:           e.Title,
			ClubName:        e.ClubName,
			Date:            e.Date,
			Capacity:        e.Capacity,
			RegisteredCount: e.RegisteredCount,
		}
	}

	return data, nil
}
