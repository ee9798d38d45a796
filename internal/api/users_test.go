package api

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"botmarket/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestGetUser(t *testing.T) {
	r, db, _ := testEnv(t)
	_, address := walletLogin(t, r)

	var user domain.User
	require.NoError(t, db.Where("wallet_address = ?", strings.ToLower(address)).First(&user).Error)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/users/%d", user.ID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	decodeBody(t, w, &resp)
	require.Equal(t, strings.ToLower(address), resp["wallet_address"])
}

func TestGetUser_NotFound(t *testing.T) {
	r, _, _ := testEnv(t)

	w := doJSON(t, r, http.MethodGet, "/users/9999", nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateUser_Self(t *testing.T) {
	r, db, _ := testEnv(t)
	token, address := walletLogin(t, r)

	var user domain.User
	require.NoError(t, db.Where("wallet_address = ?", strings.ToLower(address)).First(&user).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/users/%d", user.ID), gin.H{
		"username": "renamed", "email": "me@example.com",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	var reread domain.User
	require.NoError(t, db.First(&reread, user.ID).Error)
	require.Equal(t, "renamed", reread.Username)
	require.Equal(t, "me@example.com", *reread.Email)
	require.Equal(t, domain.RoleUser, reread.Role) // Role is not patchable
}

func TestUpdateUser_OtherAccountForbidden(t *testing.T) {
	r, db, _ := testEnv(t)
	token, _ := walletLogin(t, r)
	_, otherAddress := walletLogin(t, r)

	var other domain.User
	require.NoError(t, db.Where("wallet_address = ?", strings.ToLower(otherAddress)).First(&other).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/users/%d", other.ID), gin.H{
		"username": "hijacked",
	}, token)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateUser_AdminCanPatchAnyone(t *testing.T) {
	r, db, _ := testEnv(t)
	adminToken, adminAddress := walletLogin(t, r)
	promote(t, db, adminAddress, domain.RoleAdmin)
	_, targetAddress := walletLogin(t, r)

	var target domain.User
	require.NoError(t, db.Where("wallet_address = ?", strings.ToLower(targetAddress)).First(&target).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/users/%d", target.ID), gin.H{
		"username": "moderated",
	}, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateUser_DuplicateEmailConflict(t *testing.T) {
	r, db, _ := testEnv(t)
	token, address := walletLogin(t, r)

	// Another account already owns the email
	w := doJSON(t, r, http.MethodPost, "/auth/register", gin.H{
		"email": "taken@example.com", "username": "first",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	var user domain.User
	require.NoError(t, db.Where("wallet_address = ?", strings.ToLower(address)).First(&user).Error)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/users/%d", user.ID), gin.H{
		"email": "taken@example.com",
	}, token)
	require.Equal(t, http.StatusConflict, w.Code)
}
