package stubserver

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/storyshare/storyshare/internal/utils"
	"github.com/storyshare/storyshare/internal/validators"
	"github.com/storyshare/storyshare/models"
)

func fail(w http.ResponseWriter, message string, status int) {
	utils.WriteJSON(w, models.APIResponse{Error: true, Message: message}, status)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Name == "" || req.Email == "" || len(req.Password) < 8 {
		fail(w, "password must be at least 8 characters", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[req.Email]; exists {
		fail(w, "Email is already taken", http.StatusBadRequest)
		return
	}

	s.accounts[req.Email] = account{
		id:       fmt.Sprintf("user-%d", s.nextUserID),
		name:     req.Name,
		email:    req.Email,
		password: req.Password,
	}
	s.nextUserID++

	utils.WriteJSON(w, models.APIResponse{Message: "User created"}, http.StatusCreated)
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	acc, exists := s.accounts[req.Email]
	s.mu.Unlock()

	if !exists || acc.password != req.Password {
		fail(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := s.issueToken(acc.id)
	if err != nil {
		fail(w, "could not issue token", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.LoginResponse{
		APIResponse: models.APIResponse{Message: "success"},
		LoginResult: models.LoginResult{UserID: acc.id, Name: acc.name, Token: token},
	}, http.StatusOK)
}

func (s *Server) listStories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	stories := make([]models.Story, len(s.stories))
	copy(stories, s.stories)
	s.mu.Unlock()

	utils.WriteJSON(w, models.StoriesResponse{
		APIResponse: models.APIResponse{Message: "Stories fetched successfully"},
		ListStory:   stories,
	}, http.StatusOK)
}

func (s *Server) createStory(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(4 << 20); err != nil {
		fail(w, "invalid multipart form", http.StatusBadRequest)
		return
	}

	description := r.FormValue("description")
	if description == "" {
		fail(w, "description is required", http.StatusBadRequest)
		return
	}

	photo, header, err := r.FormFile("photo")
	if err != nil {
		fail(w, "photo is required", http.StatusBadRequest)
		return
	}
	defer photo.Close()

	payload, err := io.ReadAll(photo)
	if err != nil {
		fail(w, "could not read photo", http.StatusBadRequest)
		return
	}
	if len(payload) > validators.MaxPhotoBytes {
		fail(w, "Payload content length greater than maximum allowed", http.StatusRequestEntityTooLarge)
		return
	}

	story := models.Story{
		Description: description,
		PhotoURL:    "https://stub.local/photos/" + header.Filename,
		CreatedAt:   time.Now().UTC(),
	}
	if lat, err := strconv.ParseFloat(r.FormValue("lat"), 64); err == nil {
		story.Lat = &lat
	}
	if lon, err := strconv.ParseFloat(r.FormValue("lon"), 64); err == nil {
		story.Lon = &lon
	}

	s.mu.Lock()
	story.ID = fmt.Sprintf("story-%d", s.nextStoryID)
	s.nextStoryID++
	s.stories = append(s.stories, story)
	s.mu.Unlock()

	utils.WriteJSON(w, models.APIResponse{Message: "success"}, http.StatusCreated)
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var sub models.PushSubscription
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil || sub.Endpoint == "" {
		fail(w, "invalid subscription", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.subscriptions[sub.Endpoint] = sub
	s.mu.Unlock()

	utils.WriteJSON(w, models.APIResponse{Message: "Success to subscribe web push notification."}, http.StatusCreated)
}

func (s *Server) unsubscribe(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Endpoint string `json:"endpoint"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Endpoint == "" {
		fail(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	delete(s.subscriptions, body.Endpoint)
	s.mu.Unlock()

	utils.WriteJSON(w, models.APIResponse{Message: "Success to unsubscribe web push notification."}, http.StatusOK)
}
