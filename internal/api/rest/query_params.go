package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/feral-file/pplp-engine/internal/store/schema"
)

// GetChangesQueryParams holds query parameters for GET /changes
type GetChangesQueryParams struct {
	SubjectTypes []schema.SubjectType `form:"subject_type"`
	SubjectIDs   []string             `form:"subject_id"`
	Anchor       *int64               `form:"anchor"`
	Limit        int                  `form:"limit,default=20"`
}

// ParseGetChangesQuery parses query parameters for GET /changes
func ParseGetChangesQuery(c *gin.Context) (*GetChangesQueryParams, error) {
	var params GetChangesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	return &params, nil
}

// Validate validates the query parameters
func (p *GetChangesQueryParams) Validate() error {
	for _, t := range p.SubjectTypes {
		switch t {
		case schema.SubjectTypeAction, schema.SubjectTypeMintRequest, schema.SubjectTypePolicy:
		default:
			return fmt.Errorf("unknown subject_type %q", t)
		}
	}
	if p.Anchor != nil && *p.Anchor < 0 {
		return fmt.Errorf("anchor must not be negative")
	}
	if p.Limit < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	return nil
}

// GetPolicyChangesQueryParams holds query parameters for GET /policies/changes
type GetPolicyChangesQueryParams struct {
	PolicyVersion string `form:"policy_version"`
	Limit         int    `form:"limit,default=20"`
	Offset        uint64 `form:"offset,default=0"`
}

// ParseGetPolicyChangesQuery parses query parameters for GET /policies/changes
func ParseGetPolicyChangesQuery(c *gin.Context) (*GetPolicyChangesQueryParams, error) {
	var params GetPolicyChangesQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}
	if params.Limit < 0 {
		return nil, fmt.Errorf("limit must not be negative")
	}
	return &params, nil
}

// ListAttestersQueryParams holds query parameters for GET /policies/:version/attesters
type ListAttestersQueryParams struct {
	ActiveOnly bool `form:"active_only,default=true"`
}

// GetEpochQueryParams holds query parameters for GET /epochs/:key
type GetEpochQueryParams struct {
	UserID string `form:"user_id"`
}
