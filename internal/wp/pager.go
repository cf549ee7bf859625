package wp

import (
	"context"

	"github.com/kartikmehta18/sudisa-farms-harvest-cart/internal/domain"
)

// PostPager walks the post listing page by page. Iteration ends when a
// page comes back shorter than the requested size. The pager is
// restartable: a fresh pager replays from page one.
type PostPager struct {
	client  *Client
	perPage int
	page    int
	done    bool
}

func (c *Client) Posts(perPage int) *PostPager {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &PostPager{client: c, perPage: perPage}
}

// Next fetches the next page. A nil slice with a nil error means the
// sequence is exhausted.
func (p *PostPager) Next(ctx context.Context) ([]domain.BlogPost, error) {
	if p.done {
		return nil, nil
	}

	p.page++
	posts, err := p.client.ListPosts(ctx, p.page, p.perPage)
	if err != nil {
		p.page-- // allow a retry of the same page
		return nil, err
	}
	if len(posts) < p.perPage {
		p.done = true
	}
	if len(posts) == 0 {
		return nil, nil
	}
	return posts, nil
}

// AllPosts accumulates the whole post listing page by page.
func (c *Client) AllPosts(ctx context.Context, perPage int) ([]domain.BlogPost, error) {
	return c.Posts(perPage).All(ctx)
}

// All accumulates every remaining page.
func (p *PostPager) All(ctx context.Context) ([]domain.BlogPost, error) {
	var all []domain.BlogPost
	for {
		posts, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		if posts == nil {
			return all, nil
		}
		all = append(all, posts...)
	}
}
