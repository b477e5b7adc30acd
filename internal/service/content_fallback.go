package service

import (
	"encoding/json"
	"fmt"
)

// 上游不可用时的静态兜底数据
// 章节列表只带常用章，礼拜时间给麦加的典型值

var fallbackSurahs = json.RawMessage(`{
  "code": 200,
  "status": "OK (fallback)",
  "data": [
    {"number": 1, "name": "الفاتحة", "englishName": "Al-Fatihah", "numberOfAyahs": 7},
    {"number": 2, "name": "البقرة", "englishName": "Al-Baqarah", "numberOfAyahs": 286},
    {"number": 3, "name": "آل عمران", "englishName": "Ali 'Imran", "numberOfAyahs": 200},
    {"number": 18, "name": "الكهف", "englishName": "Al-Kahf", "numberOfAyahs": 110},
    {"number": 36, "name": "يس", "englishName": "Ya-Sin", "numberOfAyahs": 83},
    {"number": 55, "name": "الرحمن", "englishName": "Ar-Rahman", "numberOfAyahs": 78},
    {"number": 67, "name": "الملك", "englishName": "Al-Mulk", "numberOfAyahs": 30},
    {"number": 112, "name": "الإخلاص", "englishName": "Al-Ikhlas", "numberOfAyahs": 4},
    {"number": 113, "name": "الفلق", "englishName": "Al-Falaq", "numberOfAyahs": 5},
    {"number": 114, "name": "الناس", "englishName": "An-Nas", "numberOfAyahs": 6}
  ]
}`)

var fallbackPrayerTimes = json.RawMessage(`{
  "code": 200,
  "status": "OK (fallback)",
  "data": {
    "timings": {
      "Fajr": "04:30",
      "Dhuhr": "12:15",
      "Asr": "15:45",
      "Maghrib": "18:30",
      "Isha": "20:00"
    }
  }
}`)

// fallbackSurahDetail 单章兜底，只有编号和占位说明
func fallbackSurahDetail(number int) json.RawMessage {
	return json.RawMessage(fmt.Sprintf(`{
  "code": 200,
  "status": "OK (fallback)",
  "data": {
    "number": %d,
    "ayahs": []
  }
}`, number))
}
