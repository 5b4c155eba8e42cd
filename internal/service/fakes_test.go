package service

import (
	"context"
	"time"

	"revhub/internal/apperr"
	"revhub/internal/model"
	"revhub/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeTargetRepo struct {
	rows map[string]*repository.TargetRow

	// readbackOverride, when set, is returned by the next CounterValue call
	// to simulate a racing decrement landing between mutation and readback.
	readbackOverride *int
}

func newFakeTargetRepo() *fakeTargetRepo {
	return &fakeTargetRepo{rows: make(map[string]*repository.TargetRow)}
}

func (f *fakeTargetRepo) Find(kind model.EngagementKind, targetID string) (*repository.TargetRow, error) {
	row, ok := f.rows[targetID]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (f *fakeTargetRepo) AdjustCounter(kind model.EngagementKind, targetID, excludeUserID string, delta int) (int64, error) {
	row, ok := f.rows[targetID]
	if !ok || row.UserID == excludeUserID {
		return 0, nil
	}
	row.Counter += delta
	return 1, nil
}

func (f *fakeTargetRepo) CounterValue(kind model.EngagementKind, targetID string) (int, error) {
	if f.readbackOverride != nil {
		v := *f.readbackOverride
		f.readbackOverride = nil
		return v, nil
	}
	return f.rows[targetID].Counter, nil
}

type unlikeEvent struct {
	userID    string
	targetID  string
	createdAt time.Time
}

type fakeLedgerRepo struct {
	recs    map[string]*model.LikeRecord // keyed by userID + "|" + targetID
	unlikes []unlikeEvent
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{recs: make(map[string]*model.LikeRecord)}
}

func (f *fakeLedgerRepo) FindByUserAndTarget(kind model.EngagementKind, userID, targetID string) (*model.LikeRecord, error) {
	rec, ok := f.recs[userID+"|"+targetID]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (f *fakeLedgerRepo) Create(kind model.EngagementKind, rec *model.LikeRecord) error {
	if rec.ID == "" {
		rec.ID = rec.UserID + "|" + rec.TargetID
	}
	now := time.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	cp := *rec
	f.recs[rec.UserID+"|"+rec.TargetID] = &cp
	return nil
}

func (f *fakeLedgerRepo) SetUnliked(kind model.EngagementKind, id string, unliked bool) error {
	for _, rec := range f.recs {
		if rec.ID == id {
			rec.Unliked = unliked
			rec.UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (f *fakeLedgerRepo) CreateUnlike(kind model.EngagementKind, userID, targetID string) error {
	f.unlikes = append(f.unlikes, unlikeEvent{userID: userID, targetID: targetID, createdAt: time.Now()})
	return nil
}

func (f *fakeLedgerRepo) DeleteUnlikesSince(kind model.EngagementKind, userID, targetID string, since time.Time) (int64, error) {
	var kept []unlikeEvent
	var removed int64
	for _, ev := range f.unlikes {
		if ev.userID == userID && ev.targetID == targetID && !ev.createdAt.Before(since) {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	f.unlikes = kept
	return removed, nil
}

type fakeSyncRepo struct {
	last       time.Time
	advanceErr error
}

func (f *fakeSyncRepo) LastQuery() (time.Time, error) {
	if f.last.IsZero() {
		return time.Unix(0, 0).UTC(), nil
	}
	return f.last, nil
}

func (f *fakeSyncRepo) Advance(date time.Time) error {
	if f.advanceErr != nil {
		return f.advanceErr
	}
	if !date.After(f.last) {
		return apperr.ErrStaleCheckpoint
	}
	f.last = date
	return nil
}

type award struct {
	userID string
	amount int
	action string
}

type fakePoints struct {
	awards []award
}

func (f *fakePoints) Award(userID string, amount int, action string) error {
	f.awards = append(f.awards, award{userID: userID, amount: amount, action: action})
	return nil
}

func (f *fakePoints) total(userID string) int {
	sum := 0
	for _, a := range f.awards {
		if a.userID == userID {
			sum += a.amount
		}
	}
	return sum
}

type deltaRow struct {
	table      string
	userID     string
	questionID string
	createdAt  time.Time
}

type fakeDeltaRepo struct {
	rows []deltaRow
}

func (f *fakeDeltaRepo) Create(table, userID, questionID string) error {
	f.rows = append(f.rows, deltaRow{table: table, userID: userID, questionID: questionID, createdAt: time.Now()})
	return nil
}

func (f *fakeDeltaRepo) DeleteSince(table, userID, questionID string, since time.Time) (int64, error) {
	var kept []deltaRow
	var removed int64
	for _, row := range f.rows {
		if row.table == table && row.userID == userID && row.questionID == questionID && !row.createdAt.Before(since) {
			removed++
			continue
		}
		kept = append(kept, row)
	}
	f.rows = kept
	return removed, nil
}

func (f *fakeDeltaRepo) ExistsSince(table, userID, questionID string, since time.Time) (bool, error) {
	for _, row := range f.rows {
		if row.table == table && row.userID == userID && row.questionID == questionID && !row.createdAt.Before(since) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeDeltaRepo) count(table string) int {
	n := 0
	for _, row := range f.rows {
		if row.table == table {
			n++
		}
	}
	return n
}

type fakeQuestionRepo struct {
	questions map[string]*model.Question
	answers   map[string]*model.Answer
}

func newFakeQuestionRepo() *fakeQuestionRepo {
	return &fakeQuestionRepo{
		questions: make(map[string]*model.Question),
		answers:   make(map[string]*model.Answer),
	}
}

func (f *fakeQuestionRepo) Create(table string, q *model.Question) error {
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuestionRepo) FindByID(table, id string) (*model.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, nil
	}
	cp := *q
	return &cp, nil
}

func (f *fakeQuestionRepo) ListByTarget(table, targetID string, limit, offset int) ([]*model.Question, int64, error) {
	var out []*model.Question
	for _, q := range f.questions {
		if q.TargetID == targetID && !q.Hidden {
			out = append(out, q)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeQuestionRepo) SetAcceptedAnswer(table, id string, answerID *string) error {
	if q, ok := f.questions[id]; ok {
		q.AcceptedAnsID = answerID
	}
	return nil
}

func (f *fakeQuestionRepo) IncrementAnsCount(table, id string, delta int) error {
	if q, ok := f.questions[id]; ok {
		q.AnsCount += delta
	}
	return nil
}

func (f *fakeQuestionRepo) CreateAnswer(table string, a *model.Answer) error {
	f.answers[a.ID] = a
	return nil
}

func (f *fakeQuestionRepo) FindAnswerByID(table, id string) (*model.Answer, error) {
	a, ok := f.answers[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeQuestionRepo) ListAnswers(table, questionID string, limit, offset int) ([]*model.Answer, error) {
	var out []*model.Answer
	for _, a := range f.answers {
		if a.QuestionID == questionID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeQuestionRepo) SetAnswerAccepted(table, id string, accepted bool) error {
	if a, ok := f.answers[id]; ok {
		a.Accepted = accepted
	}
	return nil
}

type fakeUserRepo struct {
	users      map[string]*model.User
	rounds     map[string]int
	roundReset bool
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User), rounds: make(map[string]int)}
}

func (f *fakeUserRepo) Create(user *model.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(id string) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdatePicture(id, url string) error {
	if u, ok := f.users[id]; ok {
		u.Picture = url
	}
	return nil
}

func (f *fakeUserRepo) IncrementRecommendationRound(id string) (int, error) {
	f.rounds[id]++
	return f.rounds[id], nil
}

func (f *fakeUserRepo) ResetRecommendationRounds() error {
	f.rounds = make(map[string]int)
	f.roundReset = true
	return nil
}

type fakeReviewRepo struct {
	reviews map[string]*model.Review
	top     []*model.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*model.Review)}
}

func (f *fakeReviewRepo) Create(table string, r *model.Review) error {
	if r.ID == "" {
		r.ID = "review-" + r.UserID
	}
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeReviewRepo) FindByID(table, id string) (*model.Review, error) {
	r, ok := f.reviews[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReviewRepo) ListByTarget(table, targetID string, limit, offset int) ([]*model.Review, int64, error) {
	var out []*model.Review
	for _, r := range f.reviews {
		if r.TargetID == targetID && !r.Hidden {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewRepo) ListTop(table string, limit int) ([]*model.Review, error) {
	if len(f.top) > limit {
		return f.top[:limit], nil
	}
	return f.top, nil
}

func (f *fakeReviewRepo) SetHidden(table, id, ownerID string, hidden bool) (int64, error) {
	r, ok := f.reviews[id]
	if !ok || r.UserID != ownerID {
		return 0, nil
	}
	r.Hidden = hidden
	return 1, nil
}

func (f *fakeReviewRepo) IncrementComments(table, id string, delta int) error {
	if r, ok := f.reviews[id]; ok {
		r.CommentsCount += delta
	}
	return nil
}

type fakeCommentRepo struct {
	comments map[string]*model.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]*model.Comment)}
}

func (f *fakeCommentRepo) Create(table string, c *model.Comment) error {
	if c.ID == "" {
		c.ID = "comment-" + c.UserID
	}
	f.comments[c.ID] = c
	return nil
}

func (f *fakeCommentRepo) FindByID(table, id string) (*model.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) ListByReview(table, reviewID string, limit, offset int) ([]*model.Comment, error) {
	var out []*model.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID && c.ParentID == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeCommentRepo) ListReplies(table, parentID string) ([]*model.Comment, error) {
	var out []*model.Comment
	for _, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeCatalogRepo struct {
	phones    map[string]*model.Phone
	companies map[string]*model.Company
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		phones:    make(map[string]*model.Phone),
		companies: make(map[string]*model.Company),
	}
}

func (f *fakeCatalogRepo) FindPhone(id string) (*model.Phone, error) {
	p, ok := f.phones[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (f *fakeCatalogRepo) FindCompany(id string) (*model.Company, error) {
	c, ok := f.companies[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (f *fakeCatalogRepo) ListPhones(limit, offset int) ([]*model.Phone, error) {
	var out []*model.Phone
	for _, p := range f.phones {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeCatalogRepo) IncrementPhoneViews(id string) error {
	if p, ok := f.phones[id]; ok {
		p.Views++
	}
	return nil
}

func (f *fakeCatalogRepo) UpdateCompanyLogo(id, url string) error {
	if c, ok := f.companies[id]; ok {
		c.Logo = url
	}
	return nil
}

// staticAI grades everything with a fixed score and never recommends.
type staticAI float64

func (s staticAI) Grade(ctx context.Context, text string) float64 { return float64(s) }

func (s staticAI) Recommend(ctx context.Context, userID string) (*RecommendationSet, error) {
	return &RecommendationSet{}, nil
}

type fakePointsRepo struct {
	lastUserID      string
	lastAmount      int
	lastAction      string
	lastCompetition bool
	calls           int
}

func (f *fakePointsRepo) Award(userID string, amount int, action string, competition bool) error {
	f.lastUserID = userID
	f.lastAmount = amount
	f.lastAction = action
	f.lastCompetition = competition
	f.calls++
	return nil
}

type staticCompetition bool

func (s staticCompetition) Active() bool { return bool(s) }
