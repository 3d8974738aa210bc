package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarydesk/internal/services"
)

// MembersController handles the members JSON API.
type MembersController struct {
	members MemberService
}

func NewMembersController(members MemberService) *MembersController {
	return &MembersController{members: members}
}

// GetAllMembers handles GET /api/members.
func (mc *MembersController) GetAllMembers(c *gin.Context) {
	c.JSON(http.StatusOK, mc.members.ListMembers(c.Request.Context()))
}

// CreateMember handles POST /api/members.
func (mc *MembersController) CreateMember(c *gin.Context) {
	var input services.MemberInput
	if err := c.ShouldBind(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	member, err := mc.members.AddMember(c.Request.Context(), input)
	if err != nil {
		respondWriteError(c, err, "add member")
		return
	}
	respondCreated(c, member)
}

// UpdateMember handles PUT /api/members/:id.
func (mc *MembersController) UpdateMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var input services.MemberInput
	if err := c.ShouldBind(&input); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	member, err := mc.members.UpdateMember(c.Request.Context(), id, input)
	if err != nil {
		respondWriteError(c, err, "update member")
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeleteMember handles DELETE /api/members/:id.
func (mc *MembersController) DeleteMember(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := mc.members.DeleteMember(c.Request.Context(), id); err != nil {
		respondWriteError(c, err, "delete member")
		return
	}
	respondSuccess(c, "member deleted")
}
