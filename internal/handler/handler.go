package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/entities"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/usecase/activity"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/usecase/stats"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/usecase/team"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/internal/usecase/user"
	"github.com/flyhigh-berlin/serve-stats-v2-sub001/pkg/logger"
)

type Handler struct {
	teamUC     team.TeamUseCase
	userUC     user.UserUseCase
	activityUC activity.ActivityUseCase
	statsUC    stats.StatsUseCase
	adminToken string
	userToken  string
	logger     logger.Logger
}

func New(teamUC team.TeamUseCase, userUC user.UserUseCase, activityUC activity.ActivityUseCase, statsUC stats.StatsUseCase, adminToken, userToken string, log logger.Logger) *Handler {
	return &Handler{
		teamUC:     teamUC,
		userUC:     userUC,
		activityUC: activityUC,
		statsUC:    statsUC,
		adminToken: adminToken,
		userToken:  userToken,
		logger:     log,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware(true, true))
		r.Post("/team/create", h.handleTeamCreate)
		r.Get("/teams/list", h.handleTeamsList)
		r.Get("/team/get", h.handleTeamGet)
		r.Get("/team/members", h.handleTeamMembers)
		r.Get("/team/stats", h.handleTeamStats)
		r.Get("/team/activity", h.handleTeamActivity)
		r.Get("/team/invitations", h.handleInvitationsList)
		r.Post("/team/invite", h.handleInvite)
		r.Post("/team/members/setRole", h.handleSetRole)
		r.Post("/team/members/remove", h.handleRemoveMember)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authMiddleware(true, false))
		r.Get("/admin/stats", h.handlePlatformStats)
		r.Get("/admin/users", h.handleUsersList)
		r.Post("/admin/users/setSuperAdmin", h.handleSetSuperAdmin)
	})
	return r
}

func (h *Handler) authMiddleware(allowAdmin bool, allowUser bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if h.authorized(r, allowAdmin, allowUser) {
				next.ServeHTTP(w, r)
				return
			}
			h.logger.Error("unauthorized request", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		})
	}
}

func (h *Handler) authorized(r *http.Request, allowAdmin bool, allowUser bool) bool {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	if allowAdmin && token == h.adminToken {
		return true
	}
	if allowUser && token == h.userToken {
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

type teamSchema struct {
	TeamID    string `json:"team_id"`
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
	CreatedAt string `json:"created_at"`
}

type teamWithCountsSchema struct {
	teamSchema
	MemberCount int `json:"member_count"`
	AdminCount  int `json:"admin_count"`
}

func toTeamSchema(t entities.Team) teamSchema {
	return teamSchema{
		TeamID:    t.ID,
		Name:      t.Name,
		CreatedBy: t.CreatedBy,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type memberSchema struct {
	TeamID      string `json:"team_id"`
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	JoinedAt    string `json:"joined_at"`
}

func toMemberSchema(m entities.TeamMember) memberSchema {
	return memberSchema{
		TeamID:      m.TeamID,
		UserID:      m.UserID,
		Role:        string(m.Role),
		Email:       m.Email,
		DisplayName: m.DisplayName,
		JoinedAt:    m.JoinedAt.UTC().Format(time.RFC3339),
	}
}

type invitationSchema struct {
	InvitationID string `json:"invitation_id"`
	TeamID       string `json:"team_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	Status       string `json:"status"`
	Token        string `json:"token"`
	InvitedBy    string `json:"invited_by"`
	CreatedAt    string `json:"created_at"`
}

func toInvitationSchema(inv entities.Invitation) invitationSchema {
	return invitationSchema{
		InvitationID: inv.ID,
		TeamID:       inv.TeamID,
		Email:        inv.Email,
		Role:         string(inv.Role),
		Status:       string(inv.Status),
		Token:        inv.Token,
		InvitedBy:    inv.InvitedBy,
		CreatedAt:    inv.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type activityEntrySchema struct {
	ActivityID  string `json:"activity_id"`
	TeamID      string `json:"team_id"`
	Action      string `json:"action"`
	Actor       string `json:"actor"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
}

func toActivitySchema(e entities.ActivityEntry) activityEntrySchema {
	return activityEntrySchema{
		ActivityID:  e.ID,
		TeamID:      e.TeamID,
		Action:      string(e.Action),
		Actor:       e.ActorLabel,
		Description: e.Description,
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type userSchema struct {
	UserID         string `json:"user_id"`
	Email          string `json:"email"`
	DisplayName    string `json:"display_name"`
	IsSuperAdmin   bool   `json:"is_super_admin"`
	CreatedAt      string `json:"created_at"`
	TeamCount      int    `json:"team_count"`
	AdminTeamCount int    `json:"admin_team_count"`
}

func toUserSchema(u entities.UserProfile, teamCount, adminTeamCount int) userSchema {
	return userSchema{
		UserID:         u.ID,
		Email:          u.Email,
		DisplayName:    u.DisplayName,
		IsSuperAdmin:   u.IsSuperAdmin,
		CreatedAt:      u.CreatedAt.UTC().Format(time.RFC3339),
		TeamCount:      teamCount,
		AdminTeamCount: adminTeamCount,
	}
}

type teamCreateRequest struct {
	Name      string `json:"name"`
	CreatedBy string `json:"created_by"`
}

func (h *Handler) handleTeamCreate(w http.ResponseWriter, r *http.Request) {
	var req teamCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode team create request", "error", err)
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body")
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.CreatedBy == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "name and created_by required")
		return
	}
	created, err := h.teamUC.CreateTeam(r.Context(), req.Name, req.CreatedBy)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]teamSchema{"team": toTeamSchema(created)})
}

func (h *Handler) handleTeamsList(w http.ResponseWriter, r *http.Request) {
	teams, err := h.teamUC.ListTeams(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	result := make([]teamWithCountsSchema, 0, len(teams))
	for _, t := range teams {
		result = append(result, teamWithCountsSchema{
			teamSchema:  toTeamSchema(t.Team),
			MemberCount: t.MemberCount,
			AdminCount:  t.AdminCount,
		})
	}
	writeJSON(w, http.StatusOK, map[string][]teamWithCountsSchema{"teams": result})
}

type teamOverviewResponse struct {
	Team        teamSchema         `json:"team"`
	Members     []memberSchema     `json:"members"`
	Invitations []invitationSchema `json:"invitations"`
}

func (h *Handler) handleTeamGet(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "team_id required")
		return
	}
	overview, err := h.teamUC.GetOverview(r.Context(), teamID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	members := make([]memberSchema, 0, len(overview.Members))
	for _, m := range overview.Members {
		members = append(members, toMemberSchema(m))
	}
	invitations := make([]invitationSchema, 0, len(overview.Invitations))
	for _, inv := range overview.Invitations {
		invitations = append(invitations, toInvitationSchema(inv))
	}
	writeJSON(w, http.StatusOK, teamOverviewResponse{
		Team:        toTeamSchema(overview.Team),
		Members:     members,
		Invitations: invitations,
	})
}

func (h *Handler) handleTeamMembers(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "team_id required")
		return
	}
	members, err := h.teamUC.ListMembers(r.Context(), teamID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	result := make([]memberSchema, 0, len(members))
	for _, m := range members {
		result = append(result, toMemberSchema(m))
	}
	writeJSON(w, http.StatusOK, map[string][]memberSchema{"members": result})
}

type teamStatsResponse struct {
	TotalMembers        int `json:"total_members"`
	AdminCount          int `json:"admin_count"`
	MemberCount         int `json:"member_count"`
	OtherRoleCount      int `json:"other_role_count"`
	RecentActivityCount int `json:"recent_activity_count"`
	ServeCount          int `json:"serve_count"`
}

func (h *Handler) handleTeamStats(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "team_id required")
		return
	}
	teamStats, err := h.statsUC.TeamStats(r.Context(), teamID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teamStatsResponse{
		TotalMembers:        teamStats.TotalMembers,
		AdminCount:          teamStats.AdminCount,
		MemberCount:         teamStats.MemberCount,
		OtherRoleCount:      teamStats.OtherRoleCount,
		RecentActivityCount: teamStats.RecentActivityCount,
		ServeCount:          teamStats.ServeCount,
	})
}

func (h *Handler) handleTeamActivity(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "team_id required")
		return
	}
	entries, err := h.activityUC.TeamFeed(r.Context(), teamID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	result := make([]activityEntrySchema, 0, len(entries))
	for _, e := range entries {
		result = append(result, toActivitySchema(e))
	}
	writeJSON(w, http.StatusOK, map[string][]activityEntrySchema{"activity": result})
}

func (h *Handler) handleInvitationsList(w http.ResponseWriter, r *http.Request) {
	teamID := r.URL.Query().Get("team_id")
	if teamID == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "team_id required")
		return
	}
	invitations, err := h.teamUC.ListInvitations(r.Context(), teamID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	result := make([]invitationSchema, 0, len(invitations))
	for _, inv := range invitations {
		result = append(result, toInvitationSchema(inv))
	}
	writeJSON(w, http.StatusOK, map[string][]invitationSchema{"invitations": result})
}

type inviteRequest struct {
	TeamID  string `json:"team_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	ActorID string `json:"actor_id"`
}

func (h *Handler) handleInvite(w http.ResponseWriter, r *http.Request) {
	var req inviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode invite request", "error", err)
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body")
		return
	}
	if req.TeamID == "" || strings.TrimSpace(req.Email) == "" || req.ActorID == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "team_id, email and actor_id required")
		return
	}
	inv, err := h.teamUC.CreateInvitation(r.Context(), team.CreateInvitationInput{
		TeamID:  req.TeamID,
		Email:   req.Email,
		Role:    entities.Role(req.Role),
		ActorID: req.ActorID,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]invitationSchema{"invitation": toInvitationSchema(inv)})
}

type setRoleRequest struct {
	TeamID  string `json:"team_id"`
	UserID  string `json:"user_id"`
	Role    string `json:"role"`
	ActorID string `json:"actor_id"`
}

func (h *Handler) handleSetRole(w http.ResponseWriter, r *http.Request) {
	var req setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode set role request", "error", err)
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body")
		return
	}
	if req.TeamID == "" || req.UserID == "" || req.Role == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "team_id, user_id and role required")
		return
	}
	member, err := h.teamUC.SetMemberRole(r.Context(), team.SetMemberRoleInput{
		TeamID:  req.TeamID,
		UserID:  req.UserID,
		Role:    entities.Role(req.Role),
		ActorID: req.ActorID,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]memberSchema{"member": toMemberSchema(member)})
}

type removeMemberRequest struct {
	TeamID  string `json:"team_id"`
	UserID  string `json:"user_id"`
	ActorID string `json:"actor_id"`
}

func (h *Handler) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	var req removeMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode remove member request", "error", err)
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body")
		return
	}
	if req.TeamID == "" || req.UserID == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "team_id and user_id required")
		return
	}
	removed, err := h.teamUC.RemoveMember(r.Context(), team.RemoveMemberInput{
		TeamID:  req.TeamID,
		UserID:  req.UserID,
		ActorID: req.ActorID,
	})
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]memberSchema{"member": toMemberSchema(removed)})
}

type platformStatsResponse struct {
	TotalUsers       int `json:"total_users"`
	TotalTeams       int `json:"total_teams"`
	TotalSuperAdmins int `json:"total_super_admins"`
	TotalServes      int `json:"total_serves"`
	RecentSignups    int `json:"recent_signups"`
}

func (h *Handler) handlePlatformStats(w http.ResponseWriter, r *http.Request) {
	platformStats, err := h.statsUC.PlatformStats(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, platformStatsResponse{
		TotalUsers:       platformStats.TotalUsers,
		TotalTeams:       platformStats.TotalTeams,
		TotalSuperAdmins: platformStats.TotalSuperAdmins,
		TotalServes:      platformStats.TotalServes,
		RecentSignups:    platformStats.RecentSignups,
	})
}

func (h *Handler) handleUsersList(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	users, err := h.userUC.ListUsers(r.Context(), search)
	if err != nil {
		h.handleError(w, err)
		return
	}
	result := make([]userSchema, 0, len(users))
	for _, u := range users {
		result = append(result, toUserSchema(u.UserProfile, u.TeamCount, u.AdminTeamCount))
	}
	writeJSON(w, http.StatusOK, map[string][]userSchema{"users": result})
}

type setSuperAdminRequest struct {
	UserID string `json:"user_id"`
}

func (h *Handler) handleSetSuperAdmin(w http.ResponseWriter, r *http.Request) {
	var req setSuperAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode set super admin request", "error", err)
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid body")
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "user_id required")
		return
	}
	updated, err := h.userUC.ToggleSuperAdmin(r.Context(), req.UserID)
	if err != nil {
		h.handleError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]userSchema{"user": toUserSchema(updated, 0, 0)})
}

func (h *Handler) handleError(w http.ResponseWriter, err error) {
	h.logger.Error("handler error", "error", err)
	switch {
	case errors.Is(err, entities.ErrTeamExists):
		writeError(w, http.StatusBadRequest, "TEAM_EXISTS", "team already exists")
	case errors.Is(err, entities.ErrTeamNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "team not found")
	case errors.Is(err, entities.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "user not found")
	case errors.Is(err, entities.ErrMemberNotFound):
		writeError(w, http.StatusNotFound, "NOT_FOUND", "member not found")
	case errors.Is(err, entities.ErrInviteExists):
		writeError(w, http.StatusConflict, "INVITE_EXISTS", "invitation already pending")
	case errors.Is(err, entities.ErrInvalidRole):
		writeError(w, http.StatusBadRequest, "INVALID_ROLE", "role must be admin or member")
	default:
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
