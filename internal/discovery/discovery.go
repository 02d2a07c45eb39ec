// Package discovery 负责把配置的目录解析为待分析的源码文件列表。
// 该层只做目录遍历和排除过滤，不关心文件内容。
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Finder 在若干目录下递归查找指定后缀的文件。
type Finder struct {
	fs        afero.Fs
	extension string
	logger    *zap.Logger
}

// NewFinder 创建文件查找器。extension 需要包含点号，例如 .rb。
func NewFinder(filesystem afero.Fs, extension string, logger *zap.Logger) *Finder {
	if filesystem == nil {
		filesystem = afero.NewOsFs()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Finder{
		fs:        filesystem,
		extension: extension,
		logger:    logger.Named("discovery"),
	}
}

// Find 按目录顺序返回匹配文件，同一目录内按字典序。
// 返回的路径形如 dir/sub/file.rb，与用户给出的目录前缀保持一致。
// 不存在的目录会被跳过，目录内以点号开头的文件和子目录也会被跳过。
func (f *Finder) Find(dirs []string) ([]string, error) {
	files := make([]string, 0)

	for _, dir := range dirs {
		root, err := homedir.Expand(strings.TrimSpace(dir))
		if err != nil {
			return nil, fmt.Errorf("expand directory %q: %w", dir, err)
		}
		if root == "" {
			continue
		}

		info, err := f.fs.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				f.logger.Debug("directory does not exist, skipping", zap.String("dir", root))
				continue
			}
			return nil, fmt.Errorf("stat directory: %w", err)
		}

		if !info.IsDir() {
			if f.matches(root) {
				files = append(files, filepath.ToSlash(root))
			}
			continue
		}

		walkErr := afero.Walk(f.fs, root, func(filePath string, entry fs.FileInfo, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if filePath != root && hidden(entry.Name()) {
				if entry.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if entry.IsDir() || !f.matches(filePath) {
				return nil
			}
			files = append(files, filepath.ToSlash(filePath))
			return nil
		})
		if walkErr != nil {
			return nil, fmt.Errorf("walk directory %s: %w", root, walkErr)
		}
	}

	return files, nil
}

// matches 区分大小写地比较后缀。
func (f *Finder) matches(filePath string) bool {
	return filepath.Ext(filePath) == f.extension
}

// hidden 判断以点号开头的文件或目录，例如 .bundle。
func hidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Excluder 根据通配模式过滤文件。
//
// 一个模式命中以下任意一种即视为排除：
// - 完整路径（/ 分隔）
// - 文件名
// - 任意前缀目录，例如 vendor 会排除 vendor/ 下的全部文件
type Excluder struct {
	patterns []string
}

// NewExcluder 创建过滤器，非法模式会直接返回错误。
func NewExcluder(patterns []string) (*Excluder, error) {
	cleaned := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if _, err := path.Match(pattern, ""); err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
		cleaned = append(cleaned, filepath.ToSlash(pattern))
	}
	return &Excluder{patterns: cleaned}, nil
}

// Remove 返回未被排除的文件，保持原有顺序。
func (e *Excluder) Remove(files []string) []string {
	kept := make([]string, 0, len(files))
	for _, file := range files {
		if !e.Excluded(file) {
			kept = append(kept, file)
		}
	}
	return kept
}

// Excluded 判断单个文件是否被排除。
func (e *Excluder) Excluded(file string) bool {
	slashPath := filepath.ToSlash(file)
	base := path.Base(slashPath)

	for _, pattern := range e.patterns {
		if ok, _ := path.Match(pattern, slashPath); ok {
			return true
		}
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
		// 逐级检查前缀目录。
		for dir := path.Dir(slashPath); dir != "." && dir != "/"; dir = path.Dir(dir) {
			if ok, _ := path.Match(pattern, dir); ok {
				return true
			}
			if ok, _ := path.Match(pattern, path.Base(dir)); ok {
				return true
			}
		}
	}
	return false
}
