package cache

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"wedding-invitations/core/constants"
	"wedding-invitations/core/logger"
	"wedding-invitations/modules/invitation/model"
)

// CodeCache is a short-lived redis cache for public by-code lookups, which
// take the bulk of the read traffic once invitations go out. Misses and
// redis failures both fall through to the store.
type CodeCache struct {
	rdb *redis.Client
}

func NewCodeCache(rdb *redis.Client) *CodeCache {
	return &CodeCache{rdb: rdb}
}

func (c *CodeCache) Get(ctx context.Context, code string) (*model.Invitation, bool) {
	payload, err := c.rdb.Get(ctx, constants.RedisKeyInvitationCode+code).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("CodeCache:Get:Error", "error", err, "code", code)
		}
		return nil, false
	}

	var invitation model.Invitation
	if err := json.Unmarshal(payload, &invitation); err != nil {
		logger.Warn("CodeCache:Get:Unmarshal:Error", "error", err, "code", code)
		return nil, false
	}

	return &invitation, true
}

func (c *CodeCache) Set(ctx context.Context, invitation *model.Invitation) {
	payload, err := json.Marshal(invitation)
	if err != nil {
		logger.Warn("CodeCache:Set:Marshal:Error", "error", err, "code", invitation.Code)
		return
	}

	if err := c.rdb.Set(ctx, constants.RedisKeyInvitationCode+invitation.Code, payload, constants.InvitationCodeCacheTTL).Err(); err != nil {
		logger.Warn("CodeCache:Set:Error", "error", err, "code", invitation.Code)
	}
}

func (c *CodeCache) Invalidate(ctx context.Context, code string) {
	if err := c.rdb.Del(ctx, constants.RedisKeyInvitationCode+code).Err(); err != nil {
		logger.Warn("CodeCache:Invalidate:Error", "error", err, "code", code)
	}
}
