package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// MinAbbrevLength is the shortest hash abbreviation Describe will emit.
const MinAbbrevLength = 6

type gitDescriber struct {
	repo   *git.Repository
	abbrev int
}

// NewGitDescriber opens the repository containing the current working
// directory and returns a TagDescriber backed by it.
func NewGitDescriber(abbrev int) (TagDescriber, error) {
	repo, err := git.PlainOpenWithOptions(".", &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open git repository: %w", err)
	}
	return newGitDescriber(repo, abbrev), nil
}

func newGitDescriber(repo *git.Repository, abbrev int) *gitDescriber {
	if abbrev < MinAbbrevLength {
		abbrev = MinAbbrevLength
	}
	return &gitDescriber{repo: repo, abbrev: abbrev}
}

type describeTag struct {
	name   string
	commit *object.Commit
}

// Describe reports HEAD relative to the nearest reachable tag in the
// form "<tag>-<count>-g<hash>", or the bare tag name when HEAD is
// tagged. It matches the output of git describe --tags.
func (g *gitDescriber) Describe(_ context.Context) (string, error) {
	head, err := g.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	tags, err := g.collectTags()
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return "", fmt.Errorf("no tags found in repository")
	}
	headSet, err := g.ancestorSet(head.Hash())
	if err != nil {
		return "", fmt.Errorf("failed to walk history from HEAD: %w", err)
	}
	best, distance, err := g.nearestTag(tags, headSet)
	if err != nil {
		return "", err
	}
	if best == nil {
		return "", fmt.Errorf("no tag reachable from HEAD")
	}
	if distance == 0 {
		return best.name, nil
	}
	abbrev, err := g.abbreviate(head.Hash())
	if err != nil {
		return "", fmt.Errorf("failed to abbreviate HEAD hash: %w", err)
	}
	return fmt.Sprintf("%s-%d-g%s", best.name, distance, abbrev), nil
}

// collectTags resolves every tag ref to its target commit, following
// annotated tag objects. Tags that do not point at commits are skipped.
func (g *gitDescriber) collectTags() ([]describeTag, error) {
	iter, err := g.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	var tags []describeTag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		commit, err := g.repo.CommitObject(ref.Hash())
		if err != nil {
			tag, tagErr := g.repo.TagObject(ref.Hash())
			if tagErr != nil {
				return nil
			}
			commit, err = g.repo.CommitObject(tag.Target)
			if err != nil {
				return nil
			}
		}
		tags = append(tags, describeTag{name: ref.Name().Short(), commit: commit})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate tags: %w", err)
	}
	return tags, nil
}

// ancestorSet returns the set of commits reachable from the given hash,
// including the commit itself.
func (g *gitDescriber) ancestorSet(from plumbing.Hash) (map[plumbing.Hash]struct{}, error) {
	log, err := g.repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, err
	}
	set := make(map[plumbing.Hash]struct{})
	err = log.ForEach(func(c *object.Commit) error {
		set[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// nearestTag picks the reachable tag with the fewest commits between it
// and HEAD. Ties go to the tag with the newer commit, then the greater
// name, matching the preference order of git describe.
func (g *gitDescriber) nearestTag(tags []describeTag, headSet map[plumbing.Hash]struct{}) (*describeTag, int, error) {
	sort.Slice(tags, func(i, j int) bool {
		return tags[i].name < tags[j].name
	})
	var best *describeTag
	bestDistance := 0
	for i := range tags {
		if _, ok := headSet[tags[i].commit.Hash]; !ok {
			continue
		}
		tagSet, err := g.ancestorSet(tags[i].commit.Hash)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to walk history from tag %s: %w", tags[i].name, err)
		}
		distance := 0
		for hash := range headSet {
			if _, ok := tagSet[hash]; !ok {
				distance++
			}
		}
		if best == nil || distance < bestDistance ||
			(distance == bestDistance && newerTag(&tags[i], best)) {
			best = &tags[i]
			bestDistance = distance
		}
	}
	return best, bestDistance, nil
}

// newerTag reports whether a should win a distance tie against b.
func newerTag(a, b *describeTag) bool {
	if !a.commit.Committer.When.Equal(b.commit.Committer.When) {
		return a.commit.Committer.When.After(b.commit.Committer.When)
	}
	return a.name > b.name
}

// abbreviate shortens the hash to the configured length, extending it
// while any other commit in the repository shares the prefix.
func (g *gitDescriber) abbreviate(hash plumbing.Hash) (string, error) {
	full := hash.String()
	length := g.abbrev
	if length > len(full) {
		length = len(full)
	}
	iter, err := g.repo.CommitObjects()
	if err != nil {
		return "", err
	}
	err = iter.ForEach(func(c *object.Commit) error {
		other := c.Hash.String()
		if other == full {
			return nil
		}
		for length < len(full) && strings.HasPrefix(other, full[:length]) {
			length++
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return full[:length], nil
}
