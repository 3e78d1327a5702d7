package service

import (
	"context"
	"sort"
	"time"

	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/domain"
	"github.com/Grupo-NovaTI/BlogApi-sub000/internal/repository"
)

// In-memory fakes backing the service tests. They honor the same
// error contracts as the real driver packages.

type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[int64]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) add(user *domain.User) *domain.User {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user *domain.User) error {
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return domain.ErrUserAlreadyExists
		}
	}
	f.add(user)
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *domain.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.User], error) {
	items := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return &repository.ListResult[domain.User]{Items: items, Total: int64(len(items)), Limit: opts.Limit, Offset: opts.Offset}, nil
}

func (f *fakeUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	for _, u := range f.users {
		if u.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range f.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeTagRepo struct {
	tags   map[int64]*domain.Tag
	nextID int64
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[int64]*domain.Tag), nextID: 1}
}

func (f *fakeTagRepo) add(name, description string) *domain.Tag {
	tag := &domain.Tag{
		ID:          f.nextID,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	f.nextID++
	f.tags[tag.ID] = tag
	return tag
}

func (f *fakeTagRepo) Create(ctx context.Context, tag *domain.Tag) error {
	for _, t := range f.tags {
		if t.Name == tag.Name {
			return domain.ErrTagAlreadyExists
		}
	}
	tag.ID = f.nextID
	f.nextID++
	f.tags[tag.ID] = tag
	return nil
}

func (f *fakeTagRepo) GetByID(ctx context.Context, id int64) (*domain.Tag, error) {
	t, ok := f.tags[id]
	if !ok {
		return nil, domain.ErrTagNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTagRepo) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	for _, t := range f.tags {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, domain.ErrTagNotFound
}

func (f *fakeTagRepo) Update(ctx context.Context, tag *domain.Tag) error {
	if _, ok := f.tags[tag.ID]; !ok {
		return domain.ErrTagNotFound
	}
	cp := *tag
	f.tags[tag.ID] = &cp
	return nil
}

func (f *fakeTagRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.tags[id]; !ok {
		return domain.ErrTagNotFound
	}
	delete(f.tags, id)
	return nil
}

func (f *fakeTagRepo) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.Tag], error) {
	items := make([]*domain.Tag, 0, len(f.tags))
	for _, t := range f.tags {
		cp := *t
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return &repository.ListResult[domain.Tag]{Items: items, Total: int64(len(items)), Limit: opts.Limit, Offset: opts.Offset}, nil
}

func (f *fakeTagRepo) ExistingIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error) {
	found := make(map[int64]struct{})
	for _, id := range ids {
		if _, ok := f.tags[id]; ok {
			found[id] = struct{}{}
		}
	}
	return found, nil
}

type fakeBlogTagRepo struct {
	tagRepo *fakeTagRepo
	links   map[int64]map[int64]struct{} // blogID -> set of tagIDs
}

func newFakeBlogTagRepo(tagRepo *fakeTagRepo) *fakeBlogTagRepo {
	return &fakeBlogTagRepo{tagRepo: tagRepo, links: make(map[int64]map[int64]struct{})}
}

func (f *fakeBlogTagRepo) Link(ctx context.Context, blogID int64, tagIDs []int64) error {
	set, ok := f.links[blogID]
	if !ok {
		set = make(map[int64]struct{})
		f.links[blogID] = set
	}
	for _, id := range tagIDs {
		set[id] = struct{}{}
	}
	return nil
}

func (f *fakeBlogTagRepo) Unlink(ctx context.Context, blogID int64, tagIDs []int64) error {
	set := f.links[blogID]
	for _, id := range tagIDs {
		delete(set, id)
	}
	return nil
}

func (f *fakeBlogTagRepo) ListTagIDs(ctx context.Context, blogID int64) ([]int64, error) {
	ids := make([]int64, 0, len(f.links[blogID]))
	for id := range f.links[blogID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeBlogTagRepo) ListTags(ctx context.Context, blogID int64) ([]*domain.Tag, error) {
	ids, _ := f.ListTagIDs(ctx, blogID)
	tags := make([]*domain.Tag, 0, len(ids))
	for _, id := range ids {
		if t, ok := f.tagRepo.tags[id]; ok {
			cp := *t
			tags = append(tags, &cp)
		}
	}
	return tags, nil
}

type fakeBlogRepo struct {
	blogs    map[int64]*domain.Blog
	blogTags *fakeBlogTagRepo
	nextID   int64
}

func newFakeBlogRepo(blogTags *fakeBlogTagRepo) *fakeBlogRepo {
	return &fakeBlogRepo{blogs: make(map[int64]*domain.Blog), blogTags: blogTags, nextID: 1}
}

func (f *fakeBlogRepo) add(authorID int64, title string, published bool) *domain.Blog {
	blog := domain.NewBlog(authorID, title, "content")
	blog.ID = f.nextID
	blog.IsPublished = published
	f.nextID++
	f.blogs[blog.ID] = blog
	return blog
}

func (f *fakeBlogRepo) Create(ctx context.Context, blog *domain.Blog) error {
	blog.ID = f.nextID
	f.nextID++
	cp := *blog
	f.blogs[blog.ID] = &cp
	return nil
}

func (f *fakeBlogRepo) GetByID(ctx context.Context, id int64) (*domain.Blog, error) {
	b, ok := f.blogs[id]
	if !ok {
		return nil, domain.ErrBlogNotFound
	}
	cp := *b
	if f.blogTags != nil {
		cp.Tags, _ = f.blogTags.ListTags(ctx, id)
	}
	return &cp, nil
}

func (f *fakeBlogRepo) Update(ctx context.Context, blog *domain.Blog) error {
	existing, ok := f.blogs[blog.ID]
	if !ok {
		return domain.ErrBlogNotFound
	}
	existing.Title = blog.Title
	existing.Content = blog.Content
	existing.ImageURL = blog.ImageURL
	existing.UpdatedAt = blog.UpdatedAt
	return nil
}

func (f *fakeBlogRepo) UpdatePublished(ctx context.Context, id int64, published bool) error {
	b, ok := f.blogs[id]
	if !ok {
		return domain.ErrBlogNotFound
	}
	b.IsPublished = published
	return nil
}

func (f *fakeBlogRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.blogs[id]; !ok {
		return domain.ErrBlogNotFound
	}
	delete(f.blogs, id)
	return nil
}

func (f *fakeBlogRepo) list(filter func(*domain.Blog) bool, opts repository.ListOptions) *repository.ListResult[domain.Blog] {
	items := make([]*domain.Blog, 0, len(f.blogs))
	for _, b := range f.blogs {
		if filter(b) {
			cp := *b
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return &repository.ListResult[domain.Blog]{Items: items, Total: int64(len(items)), Limit: opts.Limit, Offset: opts.Offset}
}

func (f *fakeBlogRepo) List(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.Blog], error) {
	return f.list(func(*domain.Blog) bool { return true }, opts), nil
}

func (f *fakeBlogRepo) ListPublished(ctx context.Context, opts repository.ListOptions) (*repository.ListResult[domain.Blog], error) {
	return f.list(func(b *domain.Blog) bool { return b.IsPublished }, opts), nil
}

func (f *fakeBlogRepo) ListByAuthor(ctx context.Context, authorID int64, opts repository.ListOptions) (*repository.ListResult[domain.Blog], error) {
	return f.list(func(b *domain.Blog) bool { return b.AuthorID == authorID }, opts), nil
}

func (f *fakeBlogRepo) ListPublishedByAuthor(ctx context.Context, authorID int64, opts repository.ListOptions) (*repository.ListResult[domain.Blog], error) {
	return f.list(func(b *domain.Blog) bool { return b.AuthorID == authorID && b.IsPublished }, opts), nil
}

func (f *fakeBlogRepo) CountAuthors(ctx context.Context) (int64, error) {
	authors := make(map[int64]struct{})
	for _, b := range f.blogs {
		if b.IsPublished {
			authors[b.AuthorID] = struct{}{}
		}
	}
	return int64(len(authors)), nil
}

func (f *fakeBlogRepo) CountPublished(ctx context.Context) (int64, error) {
	var n int64
	for _, b := range f.blogs {
		if b.IsPublished {
			n++
		}
	}
	return n, nil
}

type fakeCommentRepo struct {
	comments map[int64]*domain.Comment
	nextID   int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[int64]*domain.Comment), nextID: 1}
}

func (f *fakeCommentRepo) add(blogID, authorID int64, content string) *domain.Comment {
	c := domain.NewComment(authorID, blogID, content)
	c.ID = f.nextID
	f.nextID++
	f.comments[c.ID] = c
	return c
}

func (f *fakeCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	cp := *comment
	f.comments[comment.ID] = &cp
	return nil
}

func (f *fakeCommentRepo) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommentRepo) UpdateContent(ctx context.Context, id int64, content string) error {
	c, ok := f.comments[id]
	if !ok {
		return domain.ErrCommentNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return domain.ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteByIDAndAuthor(ctx context.Context, id, authorID int64) error {
	c, ok := f.comments[id]
	if !ok || c.AuthorID != authorID {
		return domain.ErrCommentNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) list(filter func(*domain.Comment) bool, opts repository.ListOptions) *repository.ListResult[domain.Comment] {
	items := make([]*domain.Comment, 0, len(f.comments))
	for _, c := range f.comments {
		if filter(c) {
			cp := *c
			items = append(items, &cp)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return &repository.ListResult[domain.Comment]{Items: items, Total: int64(len(items)), Limit: opts.Limit, Offset: opts.Offset}
}

func (f *fakeCommentRepo) ListByBlog(ctx context.Context, blogID int64, opts repository.ListOptions) (*repository.ListResult[domain.Comment], error) {
	return f.list(func(c *domain.Comment) bool { return c.BlogID == blogID }, opts), nil
}

func (f *fakeCommentRepo) ListByAuthor(ctx context.Context, authorID int64, opts repository.ListOptions) (*repository.ListResult[domain.Comment], error) {
	return f.list(func(c *domain.Comment) bool { return c.AuthorID == authorID }, opts), nil
}
