package handlers

import (
	"errors"

	"nova-library/internal/core/domain"
	"nova-library/internal/core/services"
	"nova-library/internal/pkg/pagination"
	"nova-library/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// MemberHandler handles the Join Elite form and the member API
type MemberHandler struct {
	memberService *services.MemberService
	sessions      *session.Store
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *services.MemberService, sessions *session.Store) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
		sessions:      sessions,
	}
}

// SignUpRequest represents the Join Elite form
type SignUpRequest struct {
	FullName string `json:"full_name" form:"full_name"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	Tier     string `json:"tier" form:"tier"`
}

func (r SignUpRequest) input() services.SignUpInput {
	return services.SignUpInput{
		FullName: r.FullName,
		Email:    r.Email,
		Phone:    r.Phone,
		Address:  r.Address,
		Tier:     r.Tier,
	}
}

// SignUp handles the HTML form and redirects back to the Join Elite tab
func (h *MemberHandler) SignUp(c *fiber.Ctx) error {
	v, err := loadVisitor(h.sessions, c)
	if err != nil {
		return err
	}
	defer v.save()

	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		v.fail("Invalid form submission.")
		return c.Redirect("/?tab=elite", fiber.StatusSeeOther)
	}

	member, err := h.memberService.SignUp(c.Context(), req.input())
	if err != nil {
		v.fail(userMessage(err))
		return c.Redirect("/?tab=elite", fiber.StatusSeeOther)
	}

	v.flash("Welcome to Nova Elite, " + member.FullName + "! Use " + member.Email + " at checkout for home delivery.")
	return c.Redirect("/?tab=elite", fiber.StatusSeeOther)
}

// Register handles member signup
// @Summary Register member
// @Description Register a Nova Elite member (one insert per request)
// @Tags Members
// @Accept json
// @Produce json
// @Param body body SignUpRequest true "Member data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /members [post]
func (h *MemberHandler) Register(c *fiber.Ctx) error {
	var req SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	member, err := h.memberService.SignUp(c.Context(), req.input())
	if err != nil {
		if errors.Is(err, domain.ErrMemberExists) {
			return response.Conflict(c, MsgMemberExists)
		}
		return response.Error(c, statusFor(err), userMessage(err))
	}

	return response.Created(c, "Member registered successfully", member)
}

// List returns members page by page
// @Summary List members
// @Description List registered members (Admin only)
// @Tags Members
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/members [get]
func (h *MemberHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)
	members, total, err := h.memberService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list members")
	}
	return response.Paginated(c, "Members retrieved successfully", members, params, total)
}
