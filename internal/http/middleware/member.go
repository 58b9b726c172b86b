package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"wiw3ch.app/matchmaker/common/id"
	"wiw3ch.app/matchmaker/common/logger"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/service"
)

type contextKey string

const memberContextKey contextKey = "member"

const DefaultMemberHeader = "X-Member-ID"

// RequireMember resolves the member id set by the upstream gateway in header
// and attaches the member to the request context.
func RequireMember(members service.MemberService, header string) gin.HandlerFunc {
	if header == "" {
		header = DefaultMemberHeader
	}
	return func(c *gin.Context) {
		raw := c.GetHeader(header)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + header + " header"})
			return
		}
		memberID, err := id.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid " + header + " header"})
			return
		}

		ctx := c.Request.Context()
		member, err := members.Get(ctx, memberID)
		if err != nil {
			if errors.Is(err, service.ErrMemberNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown member"})
				return
			}
			slog.ErrorContext(ctx, "failed to resolve member", "error", err, "member_id", memberID)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve member"})
			return
		}

		ctx = context.WithValue(ctx, memberContextKey, member)
		ctx = logger.WithLogFields(ctx, logger.LogFields{MemberID: &member.ID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func GetMember(ctx context.Context) *model.Member {
	member, _ := ctx.Value(memberContextKey).(*model.Member)
	return member
}

// MemberID returns the authenticated member's id, or 0 outside RequireMember.
func MemberID(ctx context.Context) int64 {
	if m := GetMember(ctx); m != nil {
		return m.ID
	}
	return 0
}
