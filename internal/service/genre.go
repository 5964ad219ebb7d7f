package service

import (
	"sort"
	"strings"

	"github.com/user/moviebox/internal/model"
)

// ComputeFavoriteGenres 统计一组收藏集下出现最多的前三个电影类型
// 电影按 uuid 去重后，把逗号分隔的类型串拆开计频，
// 并列时保持首次出现的顺序，结果用 ", " 拼接；没有类型时返回空串
func ComputeFavoriteGenres(collections []*model.Collection) string {
	seen := make(map[string]bool)
	counts := make(map[string]int)
	var order []string

	for _, collection := range collections {
		for _, movie := range collection.Movies {
			if seen[movie.UUID] {
				continue
			}
			seen[movie.UUID] = true

			if movie.Genres == "" {
				continue
			}
			for _, genre := range strings.Split(movie.Genres, ",") {
				if counts[genre] == 0 {
					order = append(order, genre)
				}
				counts[genre]++
			}
		}
	}

	// 按出现次数稳定排序，保证并列类型维持首见顺序
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > 3 {
		order = order[:3]
	}
	return strings.Join(order, ", ")
}
