package services

import (
	"context"
	"strings"
	"time"

	"campushub/internal/adapters/persistence/models"
	"campushub/internal/adapters/persistence/repositories"
	"campushub/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================================
// MOCK REPOSITORIES
// ============================================================================

type mockUserRepo struct {
	users  map[uint]*models.User
	nextID uint

	getError error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		users:  make(map[uint]*models.User),
		nextID: 1,
	}
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = m.nextID
	m.nextID++
	user.CreatedAt = time.Now()
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uint) (*models.User, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	u, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id uint) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(ctx context.Context, filter repositories.UserFilter, offset, limit int) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range m.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.DepartmentName != "" && u.DepartmentName != filter.DepartmentName {
			continue
		}
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRepo) UpdateLastLogin(ctx context.Context, id uint) error {
	u, ok := m.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	u.LastLoginAt = &now
	return nil
}

// addUser seeds a user and returns it
func (m *mockUserRepo) addUser(name, email, role, department string) *models.User {
	u := &models.User{
		Name:           name,
		Email:          email,
		Password:       "$2a$12$fakehash",
		Role:           role,
		DepartmentName: department,
		IsActive:       true,
	}
	_ = m.Create(context.Background(), u)
	return u
}

type mockRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint
}

func newMockRefreshTokenRepo() *mockRefreshTokenRepo {
	return &mockRefreshTokenRepo{
		tokens: make(map[uint]*models.RefreshToken),
		nextID: 1,
	}
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	token.ID = m.nextID
	m.nextID++
	token.CreatedAt = time.Now()
	m.tokens[token.ID] = token
	return nil
}

// GetByTokenHash only finds unrevoked tokens, matching the gorm query
func (m *mockRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, t := range m.tokens {
		if t.TokenHash == tokenHash && t.RevokedAt == nil {
			return t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRefreshTokenRepo) Revoke(ctx context.Context, id uint) error {
	t, ok := m.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	t.RevokedAt = &now
	return nil
}

func (m *mockRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	for _, t := range m.tokens {
		if t.TokenHash == tokenHash && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (m *mockRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	for _, t := range m.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			now := time.Now()
			t.RevokedAt = &now
		}
	}
	return nil
}

func (m *mockRefreshTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	var n int64
	for id, t := range m.tokens {
		if t.IsExpired() {
			delete(m.tokens, id)
			n++
		}
	}
	return n, nil
}

func (m *mockRefreshTokenRepo) activeCount(userID uint) int {
	n := 0
	for _, t := range m.tokens {
		if t.UserID == userID && t.RevokedAt == nil {
			n++
		}
	}
	return n
}

type mockClubRepo struct {
	clubs    map[uint]*models.Club
	nextID   uint
	userRepo *mockUserRepo
}

func newMockClubRepo(userRepo *mockUserRepo) *mockClubRepo {
	return &mockClubRepo{
		clubs:    make(map[uint]*models.Club),
		nextID:   1,
		userRepo: userRepo,
	}
}

func (m *mockClubRepo) Create(ctx context.Context, club *models.Club) error {
	club.ID = m.nextID
	m.nextID++
	club.CreatedAt = time.Now()
	m.clubs[club.ID] = club
	return nil
}

func (m *mockClubRepo) GetByID(ctx context.Context, id uint) (*models.Club, error) {
	c, ok := m.clubs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (m *mockClubRepo) Update(ctx context.Context, club *models.Club) error {
	if _, ok := m.clubs[club.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.clubs[club.ID] = club
	return nil
}

func (m *mockClubRepo) Delete(ctx context.Context, id uint) error {
	delete(m.clubs, id)
	return nil
}

func (m *mockClubRepo) List(ctx context.Context, departmentName string, offset, limit int) ([]*models.Club, int64, error) {
	var out []*models.Club
	for _, c := range m.clubs {
		if departmentName != "" && c.DepartmentName != departmentName {
			continue
		}
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

func (m *mockClubRepo) ExistsByName(ctx context.Context, name string) (bool, error) {
	for _, c := range m.clubs {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockClubRepo) CountApprovedMembers(ctx context.Context, clubID uint) (int64, error) {
	return 0, nil
}

// AssignManager mirrors the guarded transaction: the claim fails when the
// club already has a manager, and nothing else is mutated in that case.
func (m *mockClubRepo) AssignManager(ctx context.Context, clubID, userID uint) error {
	club, ok := m.clubs[clubID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if club.ManagerID != nil {
		return domain.ErrClubHasManager
	}
	club.ManagerID = &userID

	if user, ok := m.userRepo.users[userID]; ok {
		user.Role = models.RoleClubManager
		user.ManagedClubID = &clubID
	}
	return nil
}

func (m *mockClubRepo) addClub(name, department string) *models.Club {
	c := &models.Club{Name: name, DepartmentName: department}
	_ = m.Create(context.Background(), c)
	return c
}

type mockMemberRepo struct {
	members map[uint]*models.ClubMember
	nextID  uint
}

func newMockMemberRepo() *mockMemberRepo {
	return &mockMemberRepo{
		members: make(map[uint]*models.ClubMember),
		nextID:  1,
	}
}

func (m *mockMemberRepo) Create(ctx context.Context, member *models.ClubMember) error {
	for _, existing := range m.members {
		if existing.ClubID == member.ClubID && existing.UserID == member.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	member.ID = m.nextID
	m.nextID++
	member.CreatedAt = time.Now()
	m.members[member.ID] = member
	return nil
}

func (m *mockMemberRepo) GetByID(ctx context.Context, id uint) (*models.ClubMember, error) {
	mem, ok := m.members[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return mem, nil
}

func (m *mockMemberRepo) GetByClubAndUser(ctx context.Context, clubID, userID uint) (*models.ClubMember, error) {
	for _, mem := range m.members {
		if mem.ClubID == clubID && mem.UserID == userID {
			return mem, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockMemberRepo) Update(ctx context.Context, member *models.ClubMember) error {
	if _, ok := m.members[member.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.members[member.ID] = member
	return nil
}

func (m *mockMemberRepo) Delete(ctx context.Context, id uint) error {
	delete(m.members, id)
	return nil
}

func (m *mockMemberRepo) ListByClub(ctx context.Context, clubID uint, status string) ([]*models.ClubMember, error) {
	var out []*models.ClubMember
	for _, mem := range m.members {
		if mem.ClubID != clubID {
			continue
		}
		if status != "" && mem.Status != status {
			continue
		}
		out = append(out, mem)
	}
	return out, nil
}

func (m *mockMemberRepo) ListByUser(ctx context.Context, userID uint) ([]*models.ClubMember, error) {
	var out []*models.ClubMember
	for _, mem := range m.members {
		if mem.UserID == userID {
			out = append(out, mem)
		}
	}
	return out, nil
}

type mockEventRepo struct {
	events        map[uint]*models.Event
	registrations map[uint][]*models.EventRegistration
	nextID        uint
	nextRegID     uint
}

func newMockEventRepo() *mockEventRepo {
	return &mockEventRepo{
		events:        make(map[uint]*models.Event),
		registrations: make(map[uint][]*models.EventRegistration),
		nextID:        1,
		nextRegID:     1,
	}
}

func (m *mockEventRepo) Create(ctx context.Context, event *models.Event) error {
	event.ID = m.nextID
	m.nextID++
	event.CreatedAt = time.Now()
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	e, ok := m.events[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return e, nil
}

func (m *mockEventRepo) Update(ctx context.Context, event *models.Event) error {
	if _, ok := m.events[event.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepo) Delete(ctx context.Context, id uint) error {
	delete(m.events, id)
	return nil
}

func (m *mockEventRepo) List(ctx context.Context, filter repositories.EventFilter, offset, limit int) ([]*models.Event, int64, error) {
	var out []*models.Event
	for _, e := range m.events {
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		if filter.ClubID != 0 && e.ClubID != filter.ClubID {
			continue
		}
		if filter.UpcomingOnly && e.Date.Before(time.Now()) {
			continue
		}
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (m *mockEventRepo) GetRegistration(ctx context.Context, eventID, userID uint) (*models.EventRegistration, error) {
	for _, r := range m.registrations[eventID] {
		if r.UserID == userID {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEventRepo) ListRegistrations(ctx context.Context, eventID uint) ([]*models.EventRegistration, error) {
	return m.registrations[eventID], nil
}

func (m *mockEventRepo) ListRegisteredEvents(ctx context.Context, userID uint) ([]*models.Event, error) {
	var out []*models.Event
	for eventID, regs := range m.registrations {
		for _, r := range regs {
			if r.UserID == userID {
				if e, ok := m.events[eventID]; ok {
					out = append(out, e)
				}
			}
		}
	}
	return out, nil
}

// Register mirrors the guarded transaction: the seat increment fails when
// the event is full, and the unique (event, user) pair is enforced.
func (m *mockEventRepo) Register(ctx context.Context, eventID, userID uint) error {
	e, ok := m.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if e.RegisteredCount >= e.Capacity {
		return domain.ErrEventFull
	}
	for _, r := range m.registrations[eventID] {
		if r.UserID == userID {
			return domain.ErrAlreadyRegistered
		}
	}
	e.RegisteredCount++
	reg := &models.EventRegistration{ID: m.nextRegID, EventID: eventID, UserID: userID, CreatedAt: time.Now()}
	m.nextRegID++
	m.registrations[eventID] = append(m.registrations[eventID], reg)
	return nil
}

func (m *mockEventRepo) Cancel(ctx context.Context, eventID, userID uint) error {
	e, ok := m.events[eventID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	regs := m.registrations[eventID]
	for i, r := range regs {
		if r.UserID == userID {
			m.registrations[eventID] = append(regs[:i], regs[i+1:]...)
			if e.RegisteredCount > 0 {
				e.RegisteredCount--
			}
			return nil
		}
	}
	return domain.ErrNotRegistered
}

func (m *mockEventRepo) addEvent(clubID uint, capacity int, deadline, date time.Time) *models.Event {
	e := &models.Event{
		Title:                "Test Event",
		ClubID:               clubID,
		Capacity:             capacity,
		RegistrationDeadline: deadline,
		Date:                 date,
	}
	_ = m.Create(context.Background(), e)
	return e
}

type mockAchievementRepo struct {
	achievements map[uint]*models.ClubAchievement
	nextID       uint
}

func newMockAchievementRepo() *mockAchievementRepo {
	return &mockAchievementRepo{
		achievements: make(map[uint]*models.ClubAchievement),
		nextID:       1,
	}
}

func (m *mockAchievementRepo) Create(ctx context.Context, achievement *models.ClubAchievement) error {
	achievement.ID = m.nextID
	m.nextID++
	achievement.CreatedAt = time.Now()
	m.achievements[achievement.ID] = achievement
	return nil
}

func (m *mockAchievementRepo) GetByID(ctx context.Context, id uint) (*models.ClubAchievement, error) {
	a, ok := m.achievements[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return a, nil
}

func (m *mockAchievementRepo) Update(ctx context.Context, achievement *models.ClubAchievement) error {
	if _, ok := m.achievements[achievement.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.achievements[achievement.ID] = achievement
	return nil
}

func (m *mockAchievementRepo) Delete(ctx context.Context, id uint) error {
	delete(m.achievements, id)
	return nil
}

func (m *mockAchievementRepo) ListByClub(ctx context.Context, clubID uint) ([]*models.ClubAchievement, error) {
	var out []*models.ClubAchievement
	for _, a := range m.achievements {
		if a.ClubID == clubID {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockResourceRepo struct {
	resources map[uint]*models.ClubResource
	nextID    uint
}

func newMockResourceRepo() *mockResourceRepo {
	return &mockResourceRepo{
		resources: make(map[uint]*models.ClubResource),
		nextID:    1,
	}
}

func (m *mockResourceRepo) Create(ctx context.Context, resource *models.ClubResource) error {
	resource.ID = m.nextID
	m.nextID++
	resource.CreatedAt = time.Now()
	m.resources[resource.ID] = resource
	return nil
}

func (m *mockResourceRepo) GetByID(ctx context.Context, id uint) (*models.ClubResource, error) {
	r, ok := m.resources[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return r, nil
}

func (m *mockResourceRepo) Update(ctx context.Context, resource *models.ClubResource) error {
	if _, ok := m.resources[resource.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	m.resources[resource.ID] = resource
	return nil
}

func (m *mockResourceRepo) Delete(ctx context.Context, id uint) error {
	delete(m.resources, id)
	return nil
}

func (m *mockResourceRepo) ListByClub(ctx context.Context, clubID uint) ([]*models.ClubResource, error) {
	var out []*models.ClubResource
	for _, r := range m.resources {
		if r.ClubID == clubID {
			out = append(out, r)
		}
	}
	return out, nil
}
