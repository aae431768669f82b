package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"landscapevision/internal/events"
	"landscapevision/internal/history"
	"landscapevision/internal/imaging"
	"landscapevision/internal/llm/client"
	"landscapevision/internal/models"
)

const MaxPromptLength = 1000

var (
	ErrUnsupportedFileType = errors.New("Please upload a valid image file (JPG, PNG).")
	ErrNothingToDownload   = errors.New("no generated image to download")
)

const (
	generationFailedMessage = "Error occurred during generation."
	saveFailedMessage       = "Failed to save project."
)

// ImageEditor applies a natural-language edit to a photo.
type ImageEditor interface {
	Edit(ctx context.Context, src client.ImageSource, instruction string) (string, error)
}

// SuggestionProvider proposes complementary landscaping items for a prompt.
type SuggestionProvider interface {
	Suggest(ctx context.Context, prompt string) ([]models.LandscapingSuggestion, error)
}

// EditorFactory and SuggesterFactory resolve their backend on every call so
// API keys stored after startup are picked up.
type EditorFactory func(ctx context.Context) (ImageEditor, error)
type SuggesterFactory func(ctx context.Context) (SuggestionProvider, error)

type selectedFile struct {
	name     string
	mimeType string
	data     []byte
}

// SessionService owns the single in-progress editing session. All state
// lives behind mu; network and storage calls run without holding it.
type SessionService struct {
	ctx        context.Context
	store      DesignStoreService
	leads      LeadService
	presets    PresetService
	editor     EditorFactory
	suggesters SuggesterFactory
	now        func() time.Time
	newID      func() string

	mu               sync.Mutex
	appState         models.AppState
	currentDesignID  string
	file             *selectedFile
	imagePreview     string
	originalImageRef string
	generatedImage   string
	pastIterations   []models.DesignIteration
	prompt           *history.Linear
	errorMsg         string
	activePresetID   string
	suggestions      []models.LandscapingSuggestion
	user             *models.UserLead
	pendingAction    models.PendingAction
	showSignup       bool
	showSaveDialog   bool
	isSaving         bool
	lastAutoSave     int64
	savedDesigns     []models.SavedDesign
}

type SessionDeps struct {
	Store      DesignStoreService
	Leads      LeadService
	Presets    PresetService
	Editor     EditorFactory
	Suggesters SuggesterFactory
	Now        func() time.Time
	NewID      func() string
}

func NewSessionService(deps SessionDeps) *SessionService {
	s := &SessionService{
		store:      deps.Store,
		leads:      deps.Leads,
		presets:    deps.Presets,
		editor:     deps.Editor,
		suggesters: deps.Suggesters,
		now:        deps.Now,
		newID:      deps.NewID,
		appState:   models.AppStateIdle,
		prompt:     history.NewLinear(""),
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

func (s *SessionService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *SessionService) context() context.Context {
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

// Init loads the portfolio and the stored user, then restores the autosave
// draft if, and only if, the session is still completely empty.
func (s *SessionService) Init() models.SessionView {
	ctx := s.context()
	designs := s.store.List(ctx)
	user := s.store.GetUser(ctx)
	draft := s.store.GetDraft(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.savedDesigns = designs
	if user != nil {
		s.user = user
	}
	if draft != nil && draft.Timestamp != 0 && s.isEmptyLocked() {
		s.prompt.SetAndSave(draft.Prompt)
		s.imagePreview = deref(draft.ImagePreview)
		s.generatedImage = deref(draft.GeneratedImage)
		s.pastIterations = append([]models.DesignIteration(nil), draft.PastIterations...)
		s.originalImageRef = deref(draft.OriginalImageRef)
		s.appState = draft.AppState
		if s.appState == "" {
			s.appState = models.AppStateIdle
		}
		s.lastAutoSave = draft.Timestamp
		if draft.User != nil {
			s.user = draft.User
		}
	}
	return s.viewLocked()
}

func (s *SessionService) isEmptyLocked() bool {
	return s.file == nil && s.imagePreview == "" && s.prompt.Value() == ""
}

func (s *SessionService) State() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

// SelectImage starts a new edit from an uploaded file.
func (s *SessionService) SelectImage(name, mimeType string, data []byte) (models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !strings.HasPrefix(mimeType, "image/") {
		s.errorMsg = ErrUnsupportedFileType.Error()
		return s.viewLocked(), ErrUnsupportedFileType
	}
	if len(data) == 0 {
		return s.viewLocked(), fmt.Errorf("image file %s is empty", name)
	}

	s.file = &selectedFile{name: name, mimeType: mimeType, data: data}
	s.errorMsg = ""
	s.generatedImage = ""
	s.currentDesignID = ""

	preview := imaging.EncodeDataURI(mimeType, data)
	s.imagePreview = preview
	s.originalImageRef = preview
	s.pastIterations = nil
	return s.viewLocked(), nil
}

// ResetImage drops the uploaded photo but keeps the prompt.
func (s *SessionService) ResetImage() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imagePreview = ""
	s.file = nil
	s.originalImageRef = ""
	return s.viewLocked()
}

// SetPrompt updates the prompt as the user types, without recording history.
func (s *SessionService) SetPrompt(value string) models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt.SetValue(truncateRunes(value, MaxPromptLength))
	s.activePresetID = ""
	return s.viewLocked()
}

// CommitPrompt records the typed prompt, typically when the field loses focus.
func (s *SessionService) CommitPrompt() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt.Commit()
	return s.viewLocked()
}

func (s *SessionService) Undo() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt.Undo()
	return s.viewLocked()
}

func (s *SessionService) Redo() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt.Redo()
	return s.viewLocked()
}

func (s *SessionService) ClearPrompt() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt.SetAndSave("")
	s.activePresetID = ""
	return s.viewLocked()
}

func (s *SessionService) SelectPreset(id string) (models.SessionView, error) {
	preset, err := s.presets.GetPreset(id)
	if err != nil {
		return s.State(), err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prompt.SetAndSave(preset.Prompt)
	s.activePresetID = preset.ID
	return s.viewLocked(), nil
}

// Generate runs one edit. customPrompt overrides the typed prompt when set.
// Without an image or a non-blank prompt nothing happens. Failures end in
// the ERROR state with a message rather than an error return.
func (s *SessionService) Generate(customPrompt string) models.SessionView {
	ctx := s.context()

	s.mu.Lock()
	active := customPrompt
	if active == "" {
		active = s.prompt.Value()
	}
	if (s.file == nil && s.imagePreview == "") || strings.TrimSpace(active) == "" {
		defer s.mu.Unlock()
		return s.viewLocked()
	}
	s.appState = models.AppStateLoading
	s.errorMsg = ""

	var src client.ImageSource
	switch {
	case s.generatedImage != "":
		src = client.DataURISource(s.generatedImage)
	case s.file != nil:
		src = client.FileSource(s.file.data, s.file.mimeType)
	default:
		src = client.DataURISource(s.imagePreview)
	}
	s.mu.Unlock()

	result, err := s.runEdit(ctx, src, active)

	s.mu.Lock()
	if err != nil {
		s.errorMsg = err.Error()
		if s.errorMsg == "" {
			s.errorMsg = generationFailedMessage
		}
		s.appState = models.AppStateError
		view := s.viewLocked()
		s.mu.Unlock()
		events.Emit(ctx, events.Generation, events.NewError(view.ErrorMessage))
		return view
	}

	iteration := models.DesignIteration{
		ID:        s.newID(),
		Prompt:    active,
		Image:     result,
		Timestamp: s.now().UnixMilli(),
	}
	s.generatedImage = result
	s.pastIterations = append(s.pastIterations, iteration)
	s.prompt.SetAndSave(active)
	s.appState = models.AppStateSuccess
	s.mu.Unlock()

	events.Emit(ctx, events.Generation, events.NewSuccess("generation complete").With("iterationId", iteration.ID))

	suggestions := s.fetchSuggestions(ctx, active)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions = suggestions
	return s.viewLocked()
}

func (s *SessionService) runEdit(ctx context.Context, src client.ImageSource, instruction string) (string, error) {
	if s.editor == nil {
		return "", errors.New("image editor is not configured")
	}
	editor, err := s.editor(ctx)
	if err != nil {
		return "", err
	}
	return editor.Edit(ctx, src, instruction)
}

func (s *SessionService) fetchSuggestions(ctx context.Context, prompt string) []models.LandscapingSuggestion {
	if s.suggesters == nil {
		return client.DefaultSuggestions()
	}
	provider, err := s.suggesters(ctx)
	if err != nil {
		log.Printf("Suggestions unavailable: %v", err)
		return client.DefaultSuggestions()
	}
	out, err := provider.Suggest(ctx, prompt)
	if err != nil {
		log.Printf("Suggestions unavailable: %v", err)
		return client.DefaultSuggestions()
	}
	return out
}

// ApplySuggestion generates with a prompt that integrates item.
func (s *SessionService) ApplySuggestion(item string) models.SessionView {
	return s.Generate(fmt.Sprintf("Integrate %s into the landscaping naturally.", item))
}

// ApplyCrop crops the image currently on screen and makes the result the
// generated image. An empty selection leaves everything untouched.
func (s *SessionService) ApplyCrop(display imaging.DisplaySize, area imaging.CropArea) (models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if area.Empty() {
		return s.viewLocked(), nil
	}
	src := firstNonEmpty(s.generatedImage, s.originalImageRef, s.imagePreview)
	if src == "" {
		return s.viewLocked(), errors.New("no image to crop")
	}
	cropped, err := imaging.CropDataURI(src, display, area)
	if errors.Is(err, imaging.ErrEmptySelection) {
		return s.viewLocked(), nil
	}
	if err != nil {
		return s.viewLocked(), err
	}
	s.generatedImage = cropped
	return s.viewLocked(), nil
}

func (s *SessionService) SelectIteration(id string) (models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.pastIterations {
		if it.ID == id {
			s.generatedImage = it.Image
			s.prompt.SetAndSave(it.Prompt)
			return s.viewLocked(), nil
		}
	}
	return s.viewLocked(), fmt.Errorf("iteration %s not found", id)
}

// ViewBaseline shows the original photo again.
func (s *SessionService) ViewBaseline() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generatedImage = ""
	s.prompt.SetAndSave("")
	return s.viewLocked()
}

// RequestSave opens the save dialog, or the signup form when no lead has
// been captured yet.
func (s *SessionService) RequestSave() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		s.pendingAction = models.PendingSave
		s.showSignup = true
	} else {
		s.showSaveDialog = true
	}
	return s.viewLocked()
}

func (s *SessionService) CancelSave() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showSaveDialog = false
	return s.viewLocked()
}

// RequestDownload returns the generated image, or asks for signup first.
func (s *SessionService) RequestDownload() (*models.DownloadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generatedImage == "" {
		return nil, ErrNothingToDownload
	}
	if s.user == nil {
		s.pendingAction = models.PendingDownload
		s.showSignup = true
		return &models.DownloadResult{SignupRequired: true}, nil
	}
	return s.downloadLocked(), nil
}

// Download returns the generated image without the signup gate. Callers
// that face end users go through RequestDownload.
func (s *SessionService) Download() (*models.DownloadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generatedImage == "" {
		return nil, ErrNothingToDownload
	}
	res := s.downloadLocked()
	_, data, err := imaging.ParseDataURI(res.DataURI)
	if err != nil {
		return nil, err
	}
	res.Data = data
	return res, nil
}

func (s *SessionService) downloadLocked() *models.DownloadResult {
	return &models.DownloadResult{
		FileName: fmt.Sprintf("landscape-vision-pro-%d.png", s.now().UnixMilli()),
		DataURI:  s.generatedImage,
	}
}

// CompleteSignup records the lead and resumes the action that required it.
// The returned download is non-nil when that action was a download.
func (s *SessionService) CompleteSignup(lead models.UserLead) (*models.DownloadResult, error) {
	ctx := s.context()
	captured, err := s.leads.Capture(ctx, lead)
	if err != nil {
		return nil, err
	}
	s.store.SaveUser(ctx, *captured)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = captured
	s.showSignup = false

	var download *models.DownloadResult
	switch s.pendingAction {
	case models.PendingSave:
		s.showSaveDialog = true
	case models.PendingDownload:
		if s.generatedImage != "" {
			download = s.downloadLocked()
		}
	}
	s.pendingAction = models.PendingNone
	return download, nil
}

func (s *SessionService) CancelSignup() models.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showSignup = false
	s.pendingAction = models.PendingNone
	return s.viewLocked()
}

// ConfirmSave stores the session in the portfolio. A failure only surfaces
// as a generic message.
func (s *SessionService) ConfirmSave() models.SessionView {
	ctx := s.context()

	s.mu.Lock()
	if s.generatedImage == "" || s.imagePreview == "" {
		defer s.mu.Unlock()
		return s.viewLocked()
	}
	s.isSaving = true
	id := s.currentDesignID
	if id == "" {
		id = s.newID()
	}
	design := models.SavedDesign{
		ID:             id,
		Timestamp:      s.now().UnixMilli(),
		OriginalImage:  firstNonEmpty(s.originalImageRef, s.imagePreview),
		GeneratedImage: s.generatedImage,
		Prompt:         s.prompt.Value(),
		Iterations:     append([]models.DesignIteration(nil), s.pastIterations...),
	}
	var email string
	if s.user != nil {
		email = s.user.Email
		design.UserID = email
	}
	s.mu.Unlock()

	ok := s.store.Upsert(ctx, design)
	var designs []models.SavedDesign
	if ok {
		designs = s.store.List(ctx)
		if email != "" {
			if err := s.leads.AttachDesign(ctx, email, design.ID); err != nil {
				log.Printf("Failed to attach design %s to lead: %v", design.ID, err)
			}
		}
		s.store.ClearDraft(ctx)
	}

	s.mu.Lock()
	s.isSaving = false
	s.showSaveDialog = false
	if !ok {
		s.errorMsg = saveFailedMessage
		view := s.viewLocked()
		s.mu.Unlock()
		events.Emit(ctx, events.Portfolio, events.NewError(saveFailedMessage))
		return view
	}
	s.savedDesigns = designs
	s.currentDesignID = design.ID
	view := s.viewLocked()
	s.mu.Unlock()
	events.Emit(ctx, events.Portfolio, events.NewSuccess("design saved").With("designId", design.ID))
	return view
}

// Reset returns to an empty session and discards the draft.
func (s *SessionService) Reset() models.SessionView {
	s.mu.Lock()
	s.appState = models.AppStateIdle
	s.file = nil
	s.imagePreview = ""
	s.originalImageRef = ""
	s.generatedImage = ""
	s.pastIterations = nil
	s.prompt.SetAndSave("")
	s.currentDesignID = ""
	s.errorMsg = ""
	s.activePresetID = ""
	s.suggestions = nil
	s.mu.Unlock()

	s.store.ClearDraft(s.context())
	return s.State()
}

func (s *SessionService) findDesignLocked(id string) (models.SavedDesign, error) {
	for _, d := range s.savedDesigns {
		if d.ID == id {
			return d, nil
		}
	}
	return models.SavedDesign{}, fmt.Errorf("design %s not found", id)
}

// LoadDesign shows a saved design in the result view.
func (s *SessionService) LoadDesign(id string) (models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.findDesignLocked(id)
	if err != nil {
		return s.viewLocked(), err
	}
	s.loadDesignLocked(d)
	return s.viewLocked(), nil
}

// RefineDesign is LoadDesign for continuing to iterate; the uploaded file
// no longer applies.
func (s *SessionService) RefineDesign(id string) (models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.findDesignLocked(id)
	if err != nil {
		return s.viewLocked(), err
	}
	s.loadDesignLocked(d)
	s.file = nil
	return s.viewLocked(), nil
}

func (s *SessionService) loadDesignLocked(d models.SavedDesign) {
	s.currentDesignID = d.ID
	s.originalImageRef = d.OriginalImage
	s.imagePreview = d.OriginalImage
	s.generatedImage = d.GeneratedImage
	s.prompt.SetAndSave(d.Prompt)
	s.pastIterations = append([]models.DesignIteration(nil), d.Iterations...)
	s.appState = models.AppStateSuccess
}

// EditDesign starts over from a saved design's original photo and prompt.
func (s *SessionService) EditDesign(id string) (models.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, err := s.findDesignLocked(id)
	if err != nil {
		return s.viewLocked(), err
	}
	s.imagePreview = d.OriginalImage
	s.originalImageRef = d.OriginalImage
	s.prompt.SetAndSave(d.Prompt)
	s.appState = models.AppStateIdle
	s.generatedImage = ""
	return s.viewLocked(), nil
}

func (s *SessionService) DeleteDesign(id string) models.SessionView {
	designs := s.store.Remove(s.context(), id)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savedDesigns = designs
	return s.viewLocked()
}

// draftSnapshot captures the session for autosave. ok is false when there
// is nothing worth saving.
func (s *SessionService) draftSnapshot() (models.AutoSaveState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.imagePreview == "" && s.prompt.Value() == "" {
		return models.AutoSaveState{}, false
	}
	var user *models.UserLead
	if s.user != nil {
		u := *s.user
		user = &u
	}
	return models.AutoSaveState{
		Timestamp:        s.now().UnixMilli(),
		Prompt:           s.prompt.Value(),
		ImagePreview:     ref(s.imagePreview),
		GeneratedImage:   ref(s.generatedImage),
		PastIterations:   append([]models.DesignIteration{}, s.pastIterations...),
		OriginalImageRef: ref(s.originalImageRef),
		AppState:         s.appState,
		User:             user,
	}, true
}

func (s *SessionService) markAutoSaved(ts int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAutoSave = ts
}

func (s *SessionService) viewLocked() models.SessionView {
	v := models.SessionView{
		AppState:         s.appState,
		CurrentDesignID:  s.currentDesignID,
		ImagePreview:     s.imagePreview,
		OriginalImageRef: s.originalImageRef,
		GeneratedImage:   s.generatedImage,
		PastIterations:   append([]models.DesignIteration{}, s.pastIterations...),
		Prompt:           s.prompt.Value(),
		PromptLength:     utf8.RuneCountInString(s.prompt.Value()),
		MaxPromptLength:  MaxPromptLength,
		CanUndo:          s.prompt.CanUndo(),
		CanRedo:          s.prompt.CanRedo(),
		ErrorMessage:     s.errorMsg,
		ActivePresetID:   s.activePresetID,
		Suggestions:      append([]models.LandscapingSuggestion{}, s.suggestions...),
		PendingAction:    s.pendingAction,
		ShowSignup:       s.showSignup,
		ShowSaveDialog:   s.showSaveDialog,
		IsSaving:         s.isSaving,
		LastAutoSave:     s.lastAutoSave,
		SavedDesigns:     append([]models.SavedDesign{}, s.savedDesigns...),
	}
	if s.file != nil {
		v.FileName = s.file.name
	}
	if s.user != nil {
		u := *s.user
		v.User = &u
	}
	return v
}

func truncateRunes(v string, max int) string {
	if utf8.RuneCountInString(v) <= max {
		return v
	}
	return string([]rune(v)[:max])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func ref(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
