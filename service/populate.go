package service

import (
	"context"

	"github.com/ncobase/qeonaru/data"
	"github.com/ncobase/qeonaru/structs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// populate expands the owner and comments of every post, each comment with
// its author, using one batched lookup per collection. Comments keep the
// order of the post's comment list; ids that no longer resolve are skipped.
func populate(ctx context.Context, d *data.Data, posts []*structs.Post) ([]*structs.PostView, error) {
	views := make([]*structs.PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	var commentIDs []primitive.ObjectID
	for _, p := range posts {
		commentIDs = append(commentIDs, p.Comments...)
	}
	comments, err := d.Comments.FindByIDs(ctx, commentIDs)
	if err != nil {
		return nil, err
	}
	commentsByID := make(map[primitive.ObjectID]*structs.Comment, len(comments))
	for _, c := range comments {
		commentsByID[c.ID] = c
	}

	userSet := make(map[primitive.ObjectID]struct{})
	for _, p := range posts {
		userSet[p.UserID] = struct{}{}
	}
	for _, c := range comments {
		userSet[c.UserID] = struct{}{}
	}
	userIDs := make([]primitive.ObjectID, 0, len(userSet))
	for id := range userSet {
		userIDs = append(userIDs, id)
	}
	users, err := d.Users.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[primitive.ObjectID]*structs.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	for _, p := range posts {
		cv := make([]*structs.CommentView, 0, len(p.Comments))
		for _, id := range p.Comments {
			if c, ok := commentsByID[id]; ok {
				cv = append(cv, structs.NewCommentView(c, usersByID[c.UserID]))
			}
		}
		views = append(views, structs.NewPostView(p, usersByID[p.UserID], cv))
	}
	return views, nil
}
