package main

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"
)

func (s *TestSuite) TestAddRequest() {
	router := newTestRouter()
	user := s.createUser("Requestor", "requestor@example.com")

	s.Run("Should create a request", func() {
		w := performRequest(router, "POST", "/requests",
			map[string]any{"description": "need a brush"}, user.ID)
		assert.Equal(s.T(), 201, w.Code)
		assert.Equal(s.T(), "need a brush", gjson.Get(w.Body.String(), "description").String())
		assert.True(s.T(), gjson.Get(w.Body.String(), "items").IsArray())
	})

	s.Run("Should reject a blank description", func() {
		w := performRequest(router, "POST", "/requests",
			map[string]any{"description": "   "}, user.ID)
		assert.Equal(s.T(), 400, w.Code)
	})

	s.Run("Should 404 for an unknown requestor", func() {
		w := performRequest(router, "POST", "/requests",
			map[string]any{"description": "need a drill"}, 9999)
		assert.Equal(s.T(), 404, w.Code)
	})
}

func (s *TestSuite) TestRequestAnswers() {
	router := newTestRouter()
	requestor := s.createUser("Requestor", "requestor-ans@example.com")
	owner := s.createUser("Owner", "owner-ans@example.com")

	w := performRequest(router, "POST", "/requests",
		map[string]any{"description": "need a brush"}, requestor.ID)
	s.Require().Equal(201, w.Code)
	requestId := gjson.Get(w.Body.String(), "id").Int()

	w = performRequest(router, "POST", "/items", map[string]any{
		"name":        "brush",
		"description": "answers the call",
		"available":   true,
		"request_id":  requestId,
	}, owner.ID)
	s.Require().Equal(201, w.Code)
	itemId := gjson.Get(w.Body.String(), "id").Int()
	s.Require().Equal(requestId, gjson.Get(w.Body.String(), "request_id").Int())

	s.Run("The answering item appears on the request", func() {
		w := performRequest(router, "GET", fmt.Sprintf("/requests/%d", requestId), nil, requestor.ID)
		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), itemId, gjson.Get(w.Body.String(), "items.0.id").Int())
		assert.Equal(s.T(), "brush", gjson.Get(w.Body.String(), "items.0.name").String())
		assert.Equal(s.T(), requestId, gjson.Get(w.Body.String(), "items.0.request_id").Int())
	})

	s.Run("Any known user can read the request by id", func() {
		w := performRequest(router, "GET", fmt.Sprintf("/requests/%d", requestId), nil, owner.ID)
		assert.Equal(s.T(), 200, w.Code)
	})
}

func (s *TestSuite) TestGetRequests() {
	router := newTestRouter()
	alice := s.createUser("Alice", "alice-req@example.com")
	bob := s.createUser("Bob", "bob-req@example.com")

	var aliceIds []int64
	for _, desc := range []string{"first", "second", "third"} {
		w := performRequest(router, "POST", "/requests", map[string]any{"description": desc}, alice.ID)
		s.Require().Equal(201, w.Code)
		aliceIds = append(aliceIds, gjson.Get(w.Body.String(), "id").Int())
	}
	w := performRequest(router, "POST", "/requests", map[string]any{"description": "bob wants"}, bob.ID)
	s.Require().Equal(201, w.Code)
	bobId := gjson.Get(w.Body.String(), "id").Int()

	s.Run("Own requests, newest first", func() {
		w := performRequest(router, "GET", "/requests", nil, alice.ID)
		assert.Equal(s.T(), 200, w.Code)
		body := w.Body.String()
		assert.Equal(s.T(), int64(3), gjson.Get(body, "#").Int())
		var got []int64
		for _, r := range gjson.Get(body, "#.id").Array() {
			got = append(got, r.Int())
		}
		assert.ElementsMatch(s.T(), aliceIds, got)
	})

	s.Run("All requests excludes the caller's own", func() {
		w := performRequest(router, "GET", "/requests/all", nil, alice.ID)
		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), int64(1), gjson.Get(w.Body.String(), "#").Int())
		assert.Equal(s.T(), bobId, gjson.Get(w.Body.String(), "0.id").Int())

		w = performRequest(router, "GET", "/requests/all", nil, bob.ID)
		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), int64(3), gjson.Get(w.Body.String(), "#").Int())
	})

	s.Run("All requests paginates", func() {
		w := performRequest(router, "GET", "/requests/all?from=0&size=2", nil, bob.ID)
		assert.Equal(s.T(), 200, w.Code)
		assert.Equal(s.T(), int64(2), gjson.Get(w.Body.String(), "#").Int())
	})

	s.Run("Unknown user is 404", func() {
		w := performRequest(router, "GET", "/requests", nil, 9999)
		assert.Equal(s.T(), 404, w.Code)
	})

	s.Run("Unknown request id is 404", func() {
		w := performRequest(router, "GET", "/requests/99999", nil, alice.ID)
		assert.Equal(s.T(), 404, w.Code)
	})
}
