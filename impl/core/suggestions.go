package core

import "math/rand"

// starterQuestions are shown to a shopper who has not typed anything yet.
var starterQuestions = []string{
	"Laptop nào phù hợp cho sinh viên khoảng 15 triệu?",
	"Tư vấn giúp em chuột gaming dưới 1 triệu",
	"Bàn phím cơ nào đang được khuyến mãi?",
	"Màn hình 27 inch tầm 5 triệu có loại nào tốt?",
	"Card đồ họa nào chơi game tốt trong tầm 10 triệu?",
	"RAM 16GB loại nào đang rẻ nhất?",
	"Ổ cứng SSD 1TB giá khoảng 2 triệu",
	"Tai nghe gaming nào dưới 2 triệu đáng mua?",
	"CPU nào phù hợp để dựng video?",
	"Nguồn máy tính 650W nào ổn định?",
	"Tư vấn combo máy tính văn phòng cho 4 người",
	"Vỏ case nào đẹp tầm 1 triệu?",
	"Webcam nào họp online rõ nét?",
	"Loa máy tính nghe nhạc hay dưới 1 triệu?",
	"Mainboard nào hợp với CPU Intel thế hệ mới?",
	"Quạt tản nhiệt nào êm nhất?",
	"Bàn phím văn phòng gõ êm giá rẻ",
	"Chuột không dây pin trâu tầm 500 nghìn",
	"Màn hình đồ họa màu chuẩn khoảng 8 triệu",
	"Laptop gaming nào mạnh nhất shop đang có?",
	"USB 128GB loại nào bền?",
	"Balo laptop chống nước giá dưới 500 nghìn",
	"Tư vấn bộ máy tính chơi game 20 triệu",
	"Micro thu âm nào hát hay tầm 2 triệu?",
	"Ghế gaming nào ngồi lâu không mỏi?",
	"Bộ phát wifi nào xuyên tường tốt?",
	"Dây HDMI 2.1 loại xịn giá bao nhiêu?",
	"Laptop mỏng nhẹ cho dân văn phòng tầm 18 triệu",
	"Tản nhiệt nước nào đáng tiền nhất?",
	"Màn hình cong chơi game khoảng 6 triệu",
}

const suggestionCount = 3

// Suggestions returns a few starter questions, shuffled per call.
func (c *Core) Suggestions() []string {
	picked := make([]string, suggestionCount)
	for i, idx := range rand.Perm(len(starterQuestions))[:suggestionCount] {
		picked[i] = starterQuestions[idx]
	}
	return picked
}
