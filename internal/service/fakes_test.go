package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"pacho/internal/entity"
	"pacho/internal/repository"

	"github.com/google/uuid"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) {
	return "hash:" + password, nil
}

func (plainHasher) Verify(hash string, password string) bool {
	return hash == "hash:"+password
}

type fakeTokenIssuer struct{}

func (fakeTokenIssuer) Issue(user *entity.User, expert *entity.Expert, sessionID uuid.UUID) (string, time.Duration, error) {
	return "token-" + sessionID.String(), 30 * time.Minute, nil
}

type fakeEmailSender struct {
	sent []sentEmail
	err  error
}

type sentEmail struct {
	email string
	token string
}

func (s *fakeEmailSender) SendPasswordResetEmail(ctx context.Context, email string, rawToken string) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, sentEmail{email: email, token: rawToken})
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindActiveByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email && user.Status == entity.StatusActive {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByRecoveryTokenHash(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error) {
	for _, user := range r.users {
		if user.RecoveryTokenHash == nil || user.RecoveryTokenExpiresAt == nil {
			continue
		}
		if *user.RecoveryTokenHash == tokenHash && user.RecoveryTokenExpiresAt.After(now) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) UpdateLastAccess(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if user, ok := r.users[userID]; ok {
		user.LastAccessAt = &at
	}
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.users, id)
	return nil
}

type fakeExpertRepo struct {
	experts map[uuid.UUID]*entity.Expert
	users   *fakeUserRepo
}

func newFakeExpertRepo(users *fakeUserRepo) *fakeExpertRepo {
	return &fakeExpertRepo{experts: make(map[uuid.UUID]*entity.Expert), users: users}
}

func (r *fakeExpertRepo) Create(ctx context.Context, expert *entity.Expert) error {
	if expert.ID == uuid.Nil {
		expert.ID = uuid.New()
	}
	clone := *expert
	r.experts[expert.ID] = &clone
	return nil
}

func (r *fakeExpertRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expert, error) {
	expert, ok := r.experts[id]
	if !ok {
		return nil, nil
	}
	clone := *expert
	return &clone, nil
}

func (r *fakeExpertRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Expert, error) {
	for _, expert := range r.experts {
		if expert.UserID == userID {
			clone := *expert
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *fakeExpertRepo) FindByUserIDForUpdate(ctx context.Context, userID uuid.UUID) (*entity.Expert, error) {
	return r.FindByUserID(ctx, userID)
}

func (r *fakeExpertRepo) Update(ctx context.Context, expert *entity.Expert) error {
	clone := *expert
	r.experts[expert.ID] = &clone
	return nil
}

func (r *fakeExpertRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.experts, id)
	return nil
}

func (r *fakeExpertRepo) ListPending(ctx context.Context) ([]entity.Expert, error) {
	var pending []entity.Expert
	for _, expert := range r.experts {
		if expert.TestState != entity.TestStatePending {
			continue
		}
		if r.users != nil {
			user, ok := r.users.users[expert.UserID]
			if !ok || user.Status != entity.StatusPending {
				continue
			}
		}
		pending = append(pending, *expert)
	}
	return pending, nil
}

func (r *fakeExpertRepo) ListAll(ctx context.Context) ([]entity.Expert, error) {
	all := make([]entity.Expert, 0, len(r.experts))
	for _, expert := range r.experts {
		all = append(all, *expert)
	}
	return all, nil
}

type fakeQuestionRepo struct {
	questions map[uuid.UUID]*entity.Question
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{questions: make(map[uuid.UUID]*entity.Question)}
}

func (r *fakeQuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	if question.ID == uuid.Nil {
		question.ID = uuid.New()
	}
	for i := range question.Answers {
		if question.Answers[i].ID == uuid.Nil {
			question.Answers[i].ID = uuid.New()
		}
		question.Answers[i].QuestionID = question.ID
	}
	clone := cloneQuestion(question)
	r.questions[question.ID] = &clone
	return nil
}

func (r *fakeQuestionRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Question, error) {
	question, ok := r.questions[id]
	if !ok {
		return nil, nil
	}
	clone := cloneQuestion(question)
	return &clone, nil
}

func (r *fakeQuestionRepo) List(ctx context.Context) ([]entity.Question, error) {
	list := make([]entity.Question, 0, len(r.questions))
	for _, question := range r.questions {
		list = append(list, cloneQuestion(question))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list, nil
}

func (r *fakeQuestionRepo) Search(ctx context.Context, term string, limit int) ([]entity.Question, error) {
	list, _ := r.List(ctx)
	matched := make([]entity.Question, 0, limit)
	for _, question := range list {
		if !strings.Contains(strings.ToLower(question.Text), strings.ToLower(term)) {
			continue
		}
		matched = append(matched, question)
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (r *fakeQuestionRepo) Update(ctx context.Context, question *entity.Question) error {
	stored, ok := r.questions[question.ID]
	if !ok {
		return nil
	}
	stored.Text = question.Text
	stored.Position = question.Position
	return nil
}

func (r *fakeQuestionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.questions, id)
	return nil
}

func (r *fakeQuestionRepo) PositionTaken(ctx context.Context, position int, excludeID uuid.UUID) (bool, error) {
	for _, question := range r.questions {
		if question.Position == position && question.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeQuestionRepo) MaxPosition(ctx context.Context) (int, error) {
	max := 0
	for _, question := range r.questions {
		if question.Position > max {
			max = question.Position
		}
	}
	return max, nil
}

func (r *fakeQuestionRepo) CreateAnswer(ctx context.Context, answer *entity.Answer) error {
	question, ok := r.questions[answer.QuestionID]
	if !ok {
		return nil
	}
	if answer.ID == uuid.Nil {
		answer.ID = uuid.New()
	}
	question.Answers = append(question.Answers, *answer)
	return nil
}

func (r *fakeQuestionRepo) UpdateAnswer(ctx context.Context, answer *entity.Answer) error {
	question, ok := r.questions[answer.QuestionID]
	if !ok {
		return nil
	}
	for i := range question.Answers {
		if question.Answers[i].ID == answer.ID {
			question.Answers[i] = *answer
		}
	}
	return nil
}

func (r *fakeQuestionRepo) DeleteAnswer(ctx context.Context, id uuid.UUID) error {
	for _, question := range r.questions {
		for i := range question.Answers {
			if question.Answers[i].ID == id {
				question.Answers = append(question.Answers[:i], question.Answers[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (r *fakeQuestionRepo) DeactivateAnswer(ctx context.Context, id uuid.UUID) error {
	for _, question := range r.questions {
		for i := range question.Answers {
			if question.Answers[i].ID == id {
				question.Answers[i].IsActive = false
				return nil
			}
		}
	}
	return nil
}

func cloneQuestion(q *entity.Question) entity.Question {
	clone := *q
	clone.Answers = append([]entity.Answer(nil), q.Answers...)
	return clone
}

type fakeExpertAnswerRepo struct {
	records []entity.ExpertAnswer
}

func (r *fakeExpertAnswerRepo) CreateBatch(ctx context.Context, answers []entity.ExpertAnswer) error {
	for i := range answers {
		if answers[i].ID == uuid.Nil {
			answers[i].ID = uuid.New()
		}
	}
	r.records = append(r.records, answers...)
	return nil
}

func (r *fakeExpertAnswerRepo) ListByExpert(ctx context.Context, expertID uuid.UUID) ([]entity.ExpertAnswer, error) {
	var list []entity.ExpertAnswer
	for _, record := range r.records {
		if record.ExpertID == expertID {
			list = append(list, record)
		}
	}
	return list, nil
}

func (r *fakeExpertAnswerRepo) ExistsByExpert(ctx context.Context, expertID uuid.UUID) (bool, error) {
	for _, record := range r.records {
		if record.ExpertID == expertID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeExpertAnswerRepo) ExistsByAnswer(ctx context.Context, answerID uuid.UUID) (bool, error) {
	for _, record := range r.records {
		if record.AnswerID == answerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeExpertAnswerRepo) ExistsByQuestion(ctx context.Context, questionID uuid.UUID) (bool, error) {
	for _, record := range r.records {
		if record.QuestionID == questionID {
			return true, nil
		}
	}
	return false, nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]*entity.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *fakeSessionRepo) FindValid(ctx context.Context, id uuid.UUID, now time.Time) (*entity.Session, error) {
	session, ok := r.sessions[id]
	if !ok || session.RevokedAt != nil || !session.ExpiresAt.After(now) {
		return nil, nil
	}
	clone := *session
	return &clone, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	if session, ok := r.sessions[id]; ok {
		now := time.Now().UTC()
		session.RevokedAt = &now
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllByUser(ctx context.Context, userID uuid.UUID) error {
	now := time.Now().UTC()
	for _, session := range r.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			revoked := now
			session.RevokedAt = &revoked
		}
	}
	return nil
}

type fakeAuditRepo struct {
	entries []entity.AuditLog
}

func (r *fakeAuditRepo) Log(ctx context.Context, log *entity.AuditLog) error {
	r.entries = append(r.entries, *log)
	return nil
}

func (r *fakeAuditRepo) actions() []entity.AuditAction {
	actions := make([]entity.AuditAction, 0, len(r.entries))
	for _, entry := range r.entries {
		actions = append(actions, entry.Action)
	}
	return actions
}

type fakeDiseaseRepo struct {
	diseases map[uuid.UUID]*entity.Disease
}

func newFakeDiseaseRepo() *fakeDiseaseRepo {
	return &fakeDiseaseRepo{diseases: make(map[uuid.UUID]*entity.Disease)}
}

func (r *fakeDiseaseRepo) Create(ctx context.Context, disease *entity.Disease) error {
	if disease.ID == uuid.Nil {
		disease.ID = uuid.New()
	}
	clone := *disease
	r.diseases[disease.ID] = &clone
	return nil
}

func (r *fakeDiseaseRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Disease, error) {
	disease, ok := r.diseases[id]
	if !ok {
		return nil, nil
	}
	clone := *disease
	return &clone, nil
}

func (r *fakeDiseaseRepo) List(ctx context.Context) ([]entity.Disease, error) {
	list := make([]entity.Disease, 0, len(r.diseases))
	for _, disease := range r.diseases {
		list = append(list, *disease)
	}
	return list, nil
}

func (r *fakeDiseaseRepo) ListActive(ctx context.Context) ([]entity.Disease, error) {
	var list []entity.Disease
	for _, disease := range r.diseases {
		if disease.IsActive {
			list = append(list, *disease)
		}
	}
	return list, nil
}

func (r *fakeDiseaseRepo) Update(ctx context.Context, disease *entity.Disease) error {
	clone := *disease
	r.diseases[disease.ID] = &clone
	return nil
}

func (r *fakeDiseaseRepo) IncrementTreatments(ctx context.Context, id uuid.UUID) error {
	if disease, ok := r.diseases[id]; ok {
		disease.TreatmentsTotal++
	}
	return nil
}

type fakeTreatmentRepo struct {
	treatments map[uuid.UUID]*entity.Treatment
	experts    *fakeExpertRepo
}

func newFakeTreatmentRepo(experts *fakeExpertRepo) *fakeTreatmentRepo {
	return &fakeTreatmentRepo{treatments: make(map[uuid.UUID]*entity.Treatment), experts: experts}
}

func (r *fakeTreatmentRepo) Create(ctx context.Context, treatment *entity.Treatment) error {
	if treatment.ID == uuid.Nil {
		treatment.ID = uuid.New()
	}
	clone := *treatment
	r.treatments[treatment.ID] = &clone
	return nil
}

func (r *fakeTreatmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Treatment, error) {
	treatment, ok := r.treatments[id]
	if !ok {
		return nil, nil
	}
	clone := *treatment
	return &clone, nil
}

func (r *fakeTreatmentRepo) ListByExpert(ctx context.Context, expertID uuid.UUID) ([]entity.Treatment, error) {
	var list []entity.Treatment
	for _, treatment := range r.treatments {
		if treatment.ExpertID == expertID {
			list = append(list, *treatment)
		}
	}
	return list, nil
}

func (r *fakeTreatmentRepo) Update(ctx context.Context, treatment *entity.Treatment) error {
	clone := *treatment
	r.treatments[treatment.ID] = &clone
	return nil
}

func (r *fakeTreatmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.treatments, id)
	return nil
}

func (r *fakeTreatmentRepo) IncrementExpertTotal(ctx context.Context, expertID uuid.UUID) error {
	if r.experts == nil {
		return nil
	}
	if expert, ok := r.experts.experts[expertID]; ok {
		expert.TreatmentsTotal++
	}
	return nil
}

// fakeRegistry wires every fake store into one Registry so services that
// run inside a unit of work see the same data as the rest of the test.
type fakeRegistry struct {
	users         *fakeUserRepo
	experts       *fakeExpertRepo
	questions     *fakeQuestionRepo
	expertAnswers *fakeExpertAnswerRepo
	diseases      *fakeDiseaseRepo
	treatments    *fakeTreatmentRepo
}

func newFakeRegistry() *fakeRegistry {
	users := newFakeUserRepo()
	experts := newFakeExpertRepo(users)
	return &fakeRegistry{
		users:         users,
		experts:       experts,
		questions:     newFakeQuestionRepo(),
		expertAnswers: &fakeExpertAnswerRepo{},
		diseases:      newFakeDiseaseRepo(),
		treatments:    newFakeTreatmentRepo(experts),
	}
}

func (r *fakeRegistry) Users() repository.UserRepository                 { return r.users }
func (r *fakeRegistry) Experts() repository.ExpertRepository             { return r.experts }
func (r *fakeRegistry) Questions() repository.QuestionRepository         { return r.questions }
func (r *fakeRegistry) ExpertAnswers() repository.ExpertAnswerRepository { return r.expertAnswers }
func (r *fakeRegistry) Diseases() repository.DiseaseRepository           { return r.diseases }
func (r *fakeRegistry) Treatments() repository.TreatmentRepository       { return r.treatments }

type fakeUnitOfWork struct {
	registry *fakeRegistry
}

func (u *fakeUnitOfWork) Do(ctx context.Context, fn func(r repository.Registry) error) error {
	return fn(u.registry)
}
