package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/librarydesk/internal/services"
)

// MembersPage renders the members table.
func (u *UIController) MembersPage(c *gin.Context) {
	c.HTML(http.StatusOK, "members", u.pageData(c, "members", gin.H{
		"Members": u.library.ListMembers(c.Request.Context()),
	}))
}

// SearchMembers filters on name, email and phone.
func (u *UIController) SearchMembers(c *gin.Context) {
	members := u.library.ListMembers(c.Request.Context())
	c.HTML(http.StatusOK, "member-table", partialData(c, gin.H{
		"Members": filterMembers(members, c.Query("q")),
	}))
}

// NewMemberForm renders an empty member form into the modal.
func (u *UIController) NewMemberForm(c *gin.Context) {
	c.HTML(http.StatusOK, "member-form", partialData(c, gin.H{
		"Heading": "Add Member",
		"Action":  "/ui/members",
		"Member":  services.MemberInput{},
	}))
}

// EditMemberForm renders the member form filled from the store.
func (u *UIController) EditMemberForm(c *gin.Context) {
	id, ok := parseUIID(c, "member")
	if !ok {
		return
	}

	member, found := u.library.FindMember(c.Request.Context(), id)
	if !found {
		c.String(http.StatusNotFound, "Member not found")
		return
	}

	c.HTML(http.StatusOK, "member-form", partialData(c, gin.H{
		"Heading": "Edit Member",
		"Action":  fmt.Sprintf("/ui/members/%d", id),
		"Member":  member,
	}))
}

func (u *UIController) membersResult(c *gin.Context) func() gin.H {
	return func() gin.H {
		return gin.H{"Members": u.library.ListMembers(c.Request.Context())}
	}
}

// CreateMember adds a member from the form.
func (u *UIController) CreateMember(c *gin.Context) {
	form := gin.H{"Heading": "Add Member", "Action": "/ui/members"}

	var input services.MemberInput
	if err := c.ShouldBind(&input); err != nil {
		form["Member"] = input
		u.respondFormError(c, "members", "member-form", form, errUnreadableForm)
		return
	}

	member, err := u.library.AddMember(c.Request.Context(), input)
	if services.IsValidationError(err) {
		form["Member"] = input
		u.respondFormError(c, "members", "member-form", form, err)
		return
	}
	if err != nil {
		u.respondWritten(c, "members", "member-result", u.membersResult(c), flashError, "Could not add the member. Please try again.")
		return
	}

	u.respondWritten(c, "members", "member-result", u.membersResult(c), flashSuccess, fmt.Sprintf("Added %s.", member.Name))
}

func (u *UIController) UpdateMember(c *gin.Context) {
	id, ok := parseUIID(c, "member")
	if !ok {
		return
	}
	form := gin.H{"Heading": "Edit Member", "Action": fmt.Sprintf("/ui/members/%d", id)}

	var input services.MemberInput
	if err := c.ShouldBind(&input); err != nil {
		form["Member"] = input
		u.respondFormError(c, "members", "member-form", form, errUnreadableForm)
		return
	}

	member, err := u.library.UpdateMember(c.Request.Context(), id, input)
	if services.IsValidationError(err) {
		form["Member"] = input
		u.respondFormError(c, "members", "member-form", form, err)
		return
	}
	if err != nil {
		u.respondWritten(c, "members", "member-result", u.membersResult(c), flashError, "Could not update the member. Please try again.")
		return
	}

	u.respondWritten(c, "members", "member-result", u.membersResult(c), flashSuccess, fmt.Sprintf("Updated %s.", member.Name))
}

func (u *UIController) DeleteMember(c *gin.Context) {
	id, ok := parseUIID(c, "member")
	if !ok {
		return
	}

	if err := u.library.DeleteMember(c.Request.Context(), id); err != nil {
		u.respondWritten(c, "members", "member-result", u.membersResult(c), flashError, "Could not delete the member. Please try again.")
		return
	}

	u.respondWritten(c, "members", "member-result", u.membersResult(c), flashSuccess, "Member deleted.")
}
