package game

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"github.com/decker502/buyornot/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// ResourceManager 字体资源的加载与缓存
//
// 字体优先从嵌入的 data/ 读取，其次从本地文件系统读取；
// 都不可用时使用内置的位图字体，保证文字总能绘制。
//
// 非线程安全，只在游戏主循环中使用。
type ResourceManager struct {
	sourceCache   map[string]*text.GoTextFaceSource
	fontFaceCache map[string]*text.GoTextFace
	fallback      text.Face
}

// NewResourceManager 创建资源管理器
func NewResourceManager() *ResourceManager {
	return &ResourceManager{
		sourceCache:   make(map[string]*text.GoTextFaceSource),
		fontFaceCache: make(map[string]*text.GoTextFace),
		fallback:      text.NewGoXFace(basicfont.Face7x13),
	}
}

// LoadFont 加载 TrueType/OpenType 字体并创建指定字号的字体
// 同一路径的字体源只解析一次，不同字号共享
//
// 参数：
//   - path: 字体路径（"data/fonts/xxx.ttf" 或本地路径）
//   - size: 字号（像素）
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	source, ok := rm.sourceCache[path]
	if !ok {
		fontData, err := readResource(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
		}
		source, err = text.NewGoTextFaceSource(bytes.NewReader(fontData))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
		}
		rm.sourceCache[path] = source
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// Face 返回指定字号的字体；path 为空或加载失败时返回内置位图字体
func (rm *ResourceManager) Face(path string, size float64) text.Face {
	if path == "" {
		return rm.fallback
	}
	face, err := rm.LoadFont(path, size)
	if err != nil {
		log.Printf("[ResourceManager] Warning: %v, using fallback font", err)
		// 记住失败，避免每帧重复读取
		rm.fontFaceCache[fmt.Sprintf("%s:%.1f", path, size)] = nil
		return rm.fallback
	}
	if face == nil {
		return rm.fallback
	}
	return face
}

// FallbackFace 返回内置位图字体
func (rm *ResourceManager) FallbackFace() text.Face {
	return rm.fallback
}

func readResource(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
