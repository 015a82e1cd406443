package model

// 永続化するカートのレコード。
// 毎回まるごと上書きする（差分は持たない）。isVisibleは保存しない。
type CartSnapshot struct {
	Items []CartItem `json:"items"`
}
