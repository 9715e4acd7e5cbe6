package utils

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
)

var commonSurnames = []string{
	"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임",
	"한", "오", "서", "신", "권", "황", "안", "송", "류", "홍",
}
var commonNameSyllables = []string{
	"민", "서", "지", "현", "우", "준", "윤", "도", "하", "은",
	"수", "연", "예", "진", "주", "원", "영", "재", "성", "혜",
}

func GenerateRandomKoreanName() string {
	name := commonSurnames[rand.Intn(len(commonSurnames))]
	for i := 0; i < 2; i++ {
		name += commonNameSyllables[rand.Intn(len(commonNameSyllables))]
	}
	return name
}

var digits = "0123456789"
var letters = []rune("abcdefghijklmnopqrstuvwxyz")

func GenerateRandomID(letterLength int, digitLength int) string {
	random_id := make([]rune, letterLength+digitLength)
	for i := range random_id {
		if i < letterLength {
			random_id[i] = letters[rand.Intn(len(letters))]
		} else {
			random_id[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(random_id)
}

func GenerateRandomEmail(prefix, domainName string) string {
	return prefix + GenerateRandomID(4, 4) + "@" + domainName
}

func GenerateRandomPhone() string {
	return fmt.Sprintf("010-%04d-%04d", rand.Intn(10000), rand.Intn(10000))
}

func GenerateRandomDistrict() domain.District {
	return domain.Districts[rand.Intn(len(domain.Districts))]
}

func GenerateRandomProfile() repository.ProfileInput {
	return repository.ProfileInput{
		Name:    GenerateRandomKoreanName(),
		Phone:   GenerateRandomPhone(),
		Address: string(GenerateRandomDistrict()),
		Bio:     "성실하게 일하겠습니다.",
	}
}

var shopNameWords = []string{"도토리", "햇살", "바다", "골목", "모퉁이", "달빛", "초록", "한입"}

func GenerateRandomShop() repository.ShopInput {
	category := domain.ShopCategories[rand.Intn(len(domain.ShopCategories))]
	return repository.ShopInput{
		Name:        shopNameWords[rand.Intn(len(shopNameWords))] + " " + category,
		Category:    category,
		Address1:    string(GenerateRandomDistrict()),
		Address2:    fmt.Sprintf("%d번길 %d", rand.Intn(99)+1, rand.Intn(50)+1),
		Description: "함께 일할 분을 찾습니다.",
		ImageURL:    "https://picsum.photos/seed/" + GenerateRandomID(6, 0) + "/600/400",
		// 최저시급 근처에서 정한다
		OriginalHourlyPay: 10000 + rand.Intn(11)*100,
	}
}

// GenerateRandomNotice 는 now 이후 30일 안에 시작하는 공고를 만든다. 시급은 원래 시급 이상이다.
func GenerateRandomNotice(originalPay int, now time.Time) repository.NoticeInput {
	start := now.Add(time.Duration(rand.Intn(30*24)+1) * time.Hour).Truncate(time.Hour)
	return repository.NoticeInput{
		HourlyPay:   originalPay + rand.Intn(21)*500,
		StartsAt:    start,
		WorkHour:    rand.Intn(8) + 1,
		Description: "급하게 구합니다. 편하게 지원해주세요.",
	}
}
