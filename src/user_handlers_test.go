package main

import (
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func (s *TestSuite) TestUserCRUD() {
	router := newTestRouter()

	s.Run("Should create a user", func() {
		w := performRequest(router, "POST", "/users", map[string]any{
			"name":  "Anna",
			"email": "anna@example.com",
		}, 0)
		assert.Equal(s.T(), 201, w.Code)
		assert.Equal(s.T(), "anna@example.com", gjson.Get(w.Body.String(), "email").String())
	})

	s.Run("Should reject a blank name", func() {
		w := performRequest(router, "POST", "/users", map[string]any{
			"email": "noname@example.com",
		}, 0)
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a malformed email", func() {
		w := performRequest(router, "POST", "/users", map[string]any{
			"name":  "Bob",
			"email": "not-an-email",
		}, 0)
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should reject a duplicate email with 409", func() {
		w := performRequest(router, "POST", "/users", map[string]any{
			"name":  "Anna Again",
			"email": "anna@example.com",
		}, 0)
		assert.Equal(s.T(), 409, w.Code)
	})

	s.Run("Should list users", func() {
		w := performRequest(router, "GET", "/users", nil, 0)
		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), int64(1), gjson.Get(w.Body.String(), "#").Int())
	})
}

func (s *TestSuite) TestUserUpdate() {
	router := newTestRouter()
	user := s.createUser("Carol", "carol@example.com")
	other := s.createUser("Dave", "dave@example.com")

	s.Run("Should update name only", func() {
		w := performRequest(router, "PATCH", urlWithID("/users/%d", user.ID), map[string]any{
			"name": "Caroline",
		}, 0)
		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), "Caroline", gjson.Get(w.Body.String(), "name").String())
		assert.Equal(s.T(), "carol@example.com", gjson.Get(w.Body.String(), "email").String())
	})

	s.Run("Should reject updating to a taken email", func() {
		w := performRequest(router, "PATCH", urlWithID("/users/%d", user.ID), map[string]any{
			"email": other.Email,
		}, 0)
		assert.Equal(s.T(), 409, w.Code)
	})

	s.Run("Should keep own email on no-op email update", func() {
		w := performRequest(router, "PATCH", urlWithID("/users/%d", user.ID), map[string]any{
			"email": "carol@example.com",
		}, 0)
		assert.Equal(s.T(), 200, w.Code)
	})

	s.Run("Should 404 on unknown user", func() {
		w := performRequest(router, "PATCH", "/users/9999", map[string]any{"name": "X"}, 0)
		assert.Equal(s.T(), 404, w.Code)
	})
}

func (s *TestSuite) TestUserDelete() {
	router := newTestRouter()
	user := s.createUser("Erin", "erin@example.com")

	w := performRequest(router, "DELETE", urlWithID("/users/%d", user.ID), nil, 0)
	assert.Equal(s.T(), 204, w.Code)

	w = performRequest(router, "GET", urlWithID("/users/%d", user.ID), nil, 0)
	assert.Equal(s.T(), 404, w.Code)

	w = performRequest(router, "DELETE", urlWithID("/users/%d", user.ID), nil, 0)
	assert.Equal(s.T(), 404, w.Code)
}
