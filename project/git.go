package project

import (
	"fmt"
	"path/filepath"
	"regexp"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/storage/filesystem"

	"github.com/TuanLDT/apidoc-postman/postman"
)

var githubRegexps = []*regexp.Regexp{
	regexp.MustCompilePOSIX(`^git@github\.com:([^/]+/[^.]+)\.git$`),
	regexp.MustCompile(`^https://github\.com/([^/]+/[^/]+?)(?:\.git)?$`),
}

type gitInfo struct {
	root           string
	githubUserRepo string
	hash           string
}

func lookupGit(dir string) (gitInfo, bool) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return gitInfo{}, false
	}

	var info gitInfo

	if remote, err := repo.Remote("origin"); err == nil {
		if urls := remote.Config().URLs; len(urls) > 0 {
			for _, re := range githubRegexps {
				if matches := re.FindStringSubmatch(urls[0]); len(matches) == 2 {
					info.githubUserRepo = matches[1]
					break
				}
			}
		}
	}

	if storage, ok := repo.Storer.(*filesystem.Storage); ok {
		info.root = filepath.Dir(storage.Filesystem().Root())
	}

	if head, err := repo.Head(); err == nil {
		info.hash = head.Hash().String()
	}

	return info, true
}

// project turns the checkout into fallback metadata: the directory name, the
// HEAD hash as version and a link to the sources on GitHub.
func (g gitInfo) project() postman.Project {
	var p postman.Project

	if len(g.root) > 0 {
		p.Name = filepath.Base(g.root)
	}
	p.Version = g.hash

	if len(g.githubUserRepo) > 0 {
		url := "https://github.com/" + g.githubUserRepo
		if len(g.hash) > 0 {
			url += "/tree/" + g.hash
		}
		p.URL = url
		p.Description = fmt.Sprintf("Source: [%s]", url)
	}

	return p
}
