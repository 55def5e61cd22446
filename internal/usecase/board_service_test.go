package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ewenguilhot8-netizen/chess-tracker/internal/domain/user"
	"github.com/ewenguilhot8-netizen/chess-tracker/internal/infrastructure/repository/memory"
)

type sequenceGenerator struct {
	next int
}

func (g *sequenceGenerator) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("id-%04d", g.next), nil
}

func newTestBoardService() *BoardService {
	service := NewBoardService(
		memory.NewBoardRepository(),
		memory.NewBoardMemberRepository(),
		memory.NewBoardMessageRepository(),
		&sequenceGenerator{},
	)
	base := time.Date(2024, time.June, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	service.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}

	return service
}

func TestBoardService_OwnerCanCreateAndListBoards(t *testing.T) {
	service := newTestBoardService()
	ctx := context.Background()
	owner := user.Principal{UserID: "user-1"}

	created, err := service.CreateBoard(ctx, owner, "Club Rapid", true)
	if err != nil {
		t.Fatalf("CreateBoard returned error: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated board id")
	}
	if !created.IsPublic {
		t.Fatal("expected board to be public")
	}

	boards, err := service.ListBoards(ctx, owner)
	if err != nil {
		t.Fatalf("ListBoards returned error: %v", err)
	}
	if got := len(boards); got != 1 {
		t.Fatalf("boards got=%d want=1", got)
	}

	others, err := service.ListBoards(ctx, user.Principal{UserID: "user-2"})
	if err != nil {
		t.Fatalf("ListBoards returned error: %v", err)
	}
	if got := len(others); got != 0 {
		t.Fatalf("boards for other user got=%d want=0", got)
	}
}

func TestBoardService_PrivateBoardIsNotShared(t *testing.T) {
	service := newTestBoardService()
	ctx := context.Background()
	owner := user.Principal{UserID: "user-1"}

	private, err := service.CreateBoard(ctx, owner, "Secret", false)
	if err != nil {
		t.Fatalf("CreateBoard returned error: %v", err)
	}

	if _, _, err := service.SharedBoard(ctx, private.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("SharedBoard on private board err=%v want ErrForbidden", err)
	}

	public, err := service.CreateBoard(ctx, owner, "Open", true)
	if err != nil {
		t.Fatalf("CreateBoard returned error: %v", err)
	}
	shared, _, err := service.SharedBoard(ctx, public.ID)
	if err != nil {
		t.Fatalf("SharedBoard on public board returned error: %v", err)
	}
	if shared.Name != "Open" {
		t.Fatalf("shared board name got=%q want=%q", shared.Name, "Open")
	}
}

func TestBoardService_OnlyOwnerMutates(t *testing.T) {
	service := newTestBoardService()
	ctx := context.Background()
	owner := user.Principal{UserID: "user-1"}
	intruder := user.Principal{UserID: "user-2"}

	created, err := service.CreateBoard(ctx, owner, "Club Rapid", true)
	if err != nil {
		t.Fatalf("CreateBoard returned error: %v", err)
	}

	if _, err := service.UpdateBoard(ctx, intruder, created.ID, "Taken Over", false); !errors.Is(err, ErrForbidden) {
		t.Fatalf("UpdateBoard by non-owner err=%v want ErrForbidden", err)
	}
	if err := service.DeleteBoard(ctx, intruder, created.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("DeleteBoard by non-owner err=%v want ErrForbidden", err)
	}
	if _, err := service.AddMember(ctx, intruder, created.ID, MemberInput{Username: "magnus"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("AddMember by non-owner err=%v want ErrForbidden", err)
	}

	updated, err := service.UpdateBoard(ctx, owner, created.ID, "Club Blitz", false)
	if err != nil {
		t.Fatalf("UpdateBoard by owner returned error: %v", err)
	}
	if updated.Name != "Club Blitz" || updated.IsPublic {
		t.Fatalf("updated board got=%+v want name=Club Blitz private", updated)
	}
}

func TestBoardService_RejectsDuplicateMemberNames(t *testing.T) {
	service := newTestBoardService()
	ctx := context.Background()
	owner := user.Principal{UserID: "user-1"}

	created, err := service.CreateBoard(ctx, owner, "Club Rapid", true)
	if err != nil {
		t.Fatalf("CreateBoard returned error: %v", err)
	}
	if _, err := service.AddMember(ctx, owner, created.ID, MemberInput{Username: "Magnus", Primary: 2800}); err != nil {
		t.Fatalf("AddMember returned error: %v", err)
	}

	if _, err := service.AddMember(ctx, owner, created.ID, MemberInput{Username: "magnus"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("duplicate member err=%v want ErrInvalidInput", err)
	}

	members, err := service.ListMembers(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("ListMembers returned error: %v", err)
	}
	if got := len(members); got != 1 {
		t.Fatalf("members got=%d want=1", got)
	}
}

func TestBoardService_MembersOrderedByPrimaryScore(t *testing.T) {
	service := newTestBoardService()
	ctx := context.Background()
	owner := user.Principal{UserID: "user-1"}

	created, err := service.CreateBoard(ctx, owner, "Club Rapid", true)
	if err != nil {
		t.Fatalf("CreateBoard returned error: %v", err)
	}
	for _, m := range []MemberInput{
		{Username: "carla", Primary: 1450},
		{Username: "anna", Primary: 2100},
		{Username: "ben", Primary: 1800},
	} {
		if _, err := service.AddMember(ctx, owner, created.ID, m); err != nil {
			t.Fatalf("AddMember(%s) returned error: %v", m.Username, err)
		}
	}

	members, err := service.ListMembers(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("ListMembers returned error: %v", err)
	}
	want := []string{"anna", "ben", "carla"}
	if got := len(members); got != len(want) {
		t.Fatalf("members got=%d want=%d", got, len(want))
	}
	for i, username := range want {
		if members[i].Username != username {
			t.Fatalf("members[%d]=%q want=%q", i, members[i].Username, username)
		}
	}
}

func TestBoardService_RemoveMemberRequiresOwner(t *testing.T) {
	service := newTestBoardService()
	ctx := context.Background()
	owner := user.Principal{UserID: "user-1"}

	created, err := service.CreateBoard(ctx, owner, "Club Rapid", true)
	if err != nil {
		t.Fatalf("CreateBoard returned error: %v", err)
	}
	member, err := service.AddMember(ctx, owner, created.ID, MemberInput{Username: "magnus"})
	if err != nil {
		t.Fatalf("AddMember returned error: %v", err)
	}

	if err := service.RemoveMember(ctx, user.Principal{UserID: "user-2"}, created.ID, member.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("RemoveMember by non-owner err=%v want ErrForbidden", err)
	}
	if err := service.RemoveMember(ctx, owner, created.ID, member.ID); err != nil {
		t.Fatalf("RemoveMember by owner returned error: %v", err)
	}

	members, err := service.ListMembers(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("ListMembers returned error: %v", err)
	}
	if got := len(members); got != 0 {
		t.Fatalf("members after remove got=%d want=0", got)
	}
}

func TestBoardService_ChatWallKeepsLatestFifty(t *testing.T) {
	service := newTestBoardService()
	ctx := context.Background()
	owner := user.Principal{UserID: "user-1"}

	created, err := service.CreateBoard(ctx, owner, "Club Rapid", true)
	if err != nil {
		t.Fatalf("CreateBoard returned error: %v", err)
	}
	for i := 0; i < chatWallLimit+10; i++ {
		content := fmt.Sprintf("message %d", i)
		if _, err := service.PostMessage(ctx, owner, created.ID, "owner", content); err != nil {
			t.Fatalf("PostMessage(%d) returned error: %v", i, err)
		}
	}

	messages, err := service.ListMessages(ctx, owner, created.ID)
	if err != nil {
		t.Fatalf("ListMessages returned error: %v", err)
	}
	if got := len(messages); got != chatWallLimit {
		t.Fatalf("messages got=%d want=%d", got, chatWallLimit)
	}
	if got := messages[0].Content; got != "message 10" {
		t.Fatalf("oldest kept message got=%q want=%q", got, "message 10")
	}
	if got := messages[len(messages)-1].Content; got != "message 59" {
		t.Fatalf("newest message got=%q want=%q", got, "message 59")
	}
}

func TestBoardService_ChatRequiresReadableBoard(t *testing.T) {
	service := newTestBoardService()
	ctx := context.Background()
	owner := user.Principal{UserID: "user-1"}
	visitor := user.Principal{UserID: "user-2"}

	private, err := service.CreateBoard(ctx, owner, "Secret", false)
	if err != nil {
		t.Fatalf("CreateBoard returned error: %v", err)
	}

	if _, err := service.PostMessage(ctx, visitor, private.ID, "visitor", "hi"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("PostMessage on private board err=%v want ErrForbidden", err)
	}
	if _, err := service.ListMessages(ctx, visitor, private.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("ListMessages on private board err=%v want ErrForbidden", err)
	}
	if _, err := service.PostMessage(ctx, owner, private.ID, "owner", "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank message err=%v want ErrInvalidInput", err)
	}
}

func TestBoardService_RequiresPrincipal(t *testing.T) {
	service := newTestBoardService()
	ctx := context.Background()

	if _, err := service.CreateBoard(ctx, user.Principal{}, "Club Rapid", true); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("CreateBoard without principal err=%v want ErrUnauthorized", err)
	}
	if _, err := service.ListBoards(ctx, user.Principal{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("ListBoards without principal err=%v want ErrUnauthorized", err)
	}
}
